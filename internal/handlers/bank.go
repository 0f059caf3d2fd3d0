package handlers

import (
	"net/http"
	"strconv"

	"github.com/noahfaas/relationship-y/internal/services"

	"github.com/gin-gonic/gin"
)

type BankHandler struct {
	bank *services.BankService
}

func NewBankHandler(bank *services.BankService) *BankHandler {
	return &BankHandler{bank: bank}
}

type AddPromptRequest struct {
	Text string `json:"text" binding:"required" example:"What small habit of mine makes you smile?"`
}

// ListPrompts godoc
// @Summary      List bank prompts
// @Tags         bank
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} BankQuestion
// @Router       /api/v1/bank [get]
func (h *BankHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.bank.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// AddPrompt godoc
// @Summary      Add a bank prompt
// @Tags         bank
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddPromptRequest true "Prompt text"
// @Success      201 {object} BankQuestion
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/bank [post]
func (h *BankHandler) AddPrompt(c *gin.Context) {
	var req AddPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	prompt, err := h.bank.Add(req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

// RemovePrompt godoc
// @Summary      Remove a bank prompt
// @Tags         bank
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Prompt ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/bank/{id} [delete]
func (h *BankHandler) RemovePrompt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid prompt id"})
		return
	}
	if err := h.bank.Remove(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "prompt removed"})
}
