// Package api exposes the analyser over HTTP: a multipart upload endpoint
// returning the extracted transactions as JSON. The layer is a thin,
// stateless shell over the engine.
package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/statement-analyser/internal/engine"
	"github.com/insightdelivered/statement-analyser/internal/logger"
	"github.com/insightdelivered/statement-analyser/internal/models"
)

const maxUploadSize = 32 << 20 // 32MB

var defaultEngine = engine.New(logger.New())

// AnalyseResponse is the JSON envelope of /api/analyse.
type AnalyseResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	AccountInfo  *AccountInfo         `json:"accountInfo,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	TotalDebit   float64              `json:"totalDebit"`
	TotalCredit  float64              `json:"totalCredit"`
	Logs         []string             `json:"logs,omitempty"`
}

// AccountInfo carries the account attributes scraped from the statement.
type AccountInfo struct {
	Holder string `json:"holder,omitempty"`
	Number string `json:"number,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxUploadSize,
		DisableStartupMessage: true,
	})
	app.Use(fiberrecover.New())
	app.Get("/api/health", HandleHealth)
	app.Post("/api/analyse", HandleAnalyse)
	return app
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleAnalyse accepts a statement PDF in the "file" form field and returns
// the extraction result. Extraction itself never fails the request: an
// unreadable document comes back as success with zero transactions and the
// diagnostic log explaining why.
func HandleAnalyse(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	file, err := header.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Failed to read upload: %v", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Failed to read upload: %v", err))
	}

	meta, txns := defaultEngine.ProcessFile(data, header.Filename)

	var totalDebit, totalCredit float64
	for _, txn := range txns {
		if txn.Debit != nil {
			totalDebit += *txn.Debit
		}
		if txn.Credit != nil {
			totalCredit += *txn.Credit
		}
	}

	resp := AnalyseResponse{
		Success:      true,
		Bank:         meta.BankName,
		Transactions: txns,
		Count:        len(txns),
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Logs:         meta.Logs,
	}
	if meta.AccountHolder != "" || meta.AccountNumber != "" {
		resp.AccountInfo = &AccountInfo{
			Holder: meta.AccountHolder,
			Number: meta.AccountNumber,
		}
	}

	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyseResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
