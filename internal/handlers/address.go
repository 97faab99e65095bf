package handlers

import (
	"net/http"

	"github.com/birat04/Notionize/internal/auth"
	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/dto"
	"github.com/birat04/Notionize/internal/service"

	"github.com/gin-gonic/gin"
)

const addressNotFound = "Address not found"

type AddressHandler struct {
	svc *service.AddressService
}

func NewAddressHandler(svc *service.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListAddressesResponse
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, addressNotFound)
		return
	}
	out := make([]dto.AddressResponse, len(list))
	for i := range list {
		out[i] = addressToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListAddressesResponse{Addresses: out})
}

// Create godoc
// @Summary      Add an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateAddressRequest  true  "Address"
// @Success      201   {object}  dto.AddressEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	a, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), dom.Address{
		City:    req.City,
		Country: req.Country,
		Street:  req.Street,
		Pincode: req.Pincode,
	})
	if err != nil {
		writeError(c, err, addressNotFound)
		return
	}
	c.JSON(http.StatusCreated, dto.AddressEnvelope{Address: addressToResponse(a)})
}

// Delete godoc
// @Summary      Delete an address
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Address ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", addressNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		writeError(c, err, addressNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Address deleted successfully"})
}

func addressToResponse(a dom.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		City:      a.City,
		Country:   a.Country,
		Street:    a.Street,
		Pincode:   a.Pincode,
		CreatedAt: a.CreatedAt,
	}
}
