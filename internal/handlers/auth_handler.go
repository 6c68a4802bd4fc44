package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/edu-crm/internal/usecase/auth"
)

type AuthHandler struct {
	register *ucAuth.Register
	login    *ucAuth.Login
	me       *ucAuth.Me
}

func NewAuthHandler(
	register *ucAuth.Register,
	login *ucAuth.Login,
	me *ucAuth.Me,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, me: me}
}

// --------- Requests ---------

type RegisterRequest struct {
	UnitName    string `json:"unit_name" binding:"required"`
	UnitPhone   string `json:"unit_phone"`
	UnitAddress string `json:"unit_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), ucAuth.RegisterInput{
		UnitName:    req.UnitName,
		UnitPhone:   req.UnitPhone,
		UnitAddress: req.UnitAddress,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.me.Execute(c.Request.Context(), cl)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
