package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/httpresp"
	ucUnit "github.com/BruksfildServices01/edu-crm/internal/usecase/unit"
)

type UnitHandler struct {
	list   *ucUnit.ListUnits
	create *ucUnit.CreateUnit
}

func NewUnitHandler(list *ucUnit.ListUnits, create *ucUnit.CreateUnit) *UnitHandler {
	return &UnitHandler{list: list, create: create}
}

type CreateUnitRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *UnitHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	units, err := h.list.Execute(c.Request.Context(), cl)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, units)
}

func (h *UnitHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req CreateUnitRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.create.Execute(c.Request.Context(), cl, ucUnit.CreateUnitInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, u)
}
