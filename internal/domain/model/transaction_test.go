package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Signed(t *testing.T) {
	in := &Transaction{Type: TransactionIncome, Amount: 120}
	out := &Transaction{Type: TransactionExpense, Amount: 45}
	assert.InDelta(t, 120.0, in.Signed(), 0.001)
	assert.InDelta(t, -45.0, out.Signed(), 0.001)
}

func TestCreateTransactionRequest_NormalizeEnsuresMetadata(t *testing.T) {
	req := &CreateTransactionRequest{Type: TransactionIncome, CategoryID: " gear "}
	req.Normalize()
	require.NotNil(t, req.Metadata)
	assert.Equal(t, "gear", req.CategoryID)
}

func TestUpdateTransactionRequest_MetadataReplaced(t *testing.T) {
	tx := &Transaction{Metadata: map[string]any{"old": true}}
	meta := map[string]any{"vendor": "B&H"}
	upd := &UpdateTransactionRequest{Metadata: meta}
	require.True(t, upd.HasUpdates())

	upd.Apply(tx)
	assert.Equal(t, map[string]any{"vendor": "B&H"}, tx.Metadata)

	meta["vendor"] = "changed"
	assert.Equal(t, "B&H", tx.Metadata["vendor"])
}

func TestGalleryRequest_DefaultCategory(t *testing.T) {
	req := &CreateGalleryImageRequest{URL: " https://cdn.example.com/a.jpg ", Title: "A"}
	req.Normalize()
	assert.Equal(t, DefaultGalleryCategory, req.Category)
	assert.Equal(t, "https://cdn.example.com/a.jpg", req.URL)
	assert.Contains(t, GalleryCategories(), req.Category)
}

func TestClassifyAssignment(t *testing.T) {
	tests := []struct {
		name   string
		counts *AssignmentCounts
		photo  int
		video  int
		want   AssignmentStatus
	}{
		{name: "exact match", counts: &AssignmentCounts{TotalPhotographers: 2, TotalVideographers: 1}, photo: 2, video: 1, want: AssignmentFullyAssigned},
		{name: "nothing needed nothing assigned", counts: nil, want: AssignmentFullyAssigned},
		{name: "pending invite", counts: &AssignmentCounts{TotalPhotographers: 1, PendingVideographers: 1}, photo: 2, video: 1, want: AssignmentPendingResponses},
		{name: "short with no pending", counts: &AssignmentCounts{TotalPhotographers: 1}, photo: 2, video: 1, want: AssignmentNeedsAssignment},
		{name: "nil counts with needs", counts: nil, photo: 1, want: AssignmentNeedsAssignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAssignment(tt.counts, tt.photo, tt.video)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Pending Responses", AssignmentPendingResponses.Label())
}
