package service

import (
	"testing"

	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from enum.InvoiceStatus
		to   enum.InvoiceStatus
		want bool
	}{
		{"draft to sent", enum.InvoiceStatusDraft, enum.InvoiceStatusSent, true},
		{"draft to void", enum.InvoiceStatusDraft, enum.InvoiceStatusVoid, true},
		{"draft to paid", enum.InvoiceStatusDraft, enum.InvoiceStatusPaid, false},
		{"sent to paid", enum.InvoiceStatusSent, enum.InvoiceStatusPaid, true},
		{"sent to overdue", enum.InvoiceStatusSent, enum.InvoiceStatusOverdue, true},
		{"sent to draft", enum.InvoiceStatusSent, enum.InvoiceStatusDraft, false},
		{"overdue to paid", enum.InvoiceStatusOverdue, enum.InvoiceStatusPaid, true},
		{"paid is terminal", enum.InvoiceStatusPaid, enum.InvoiceStatusVoid, false},
		{"void is terminal", enum.InvoiceStatusVoid, enum.InvoiceStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionAllowed(tt.from, tt.to); got != tt.want {
				t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
