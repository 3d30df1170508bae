package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TestExportErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown evaluation", gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), fiber.StatusNotFound},
		{"not completed yet", errors.New("evaluation is processing, only completed evaluations can be exported"), fiber.StatusUnprocessableEntity},
		{"bad format", errors.New(`unsupported export format "csv"`), fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportErrorStatus(tt.err); got != tt.want {
				t.Errorf("exportErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
