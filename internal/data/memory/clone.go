package memory

import "github.com/shutterdesk/studio/internal/domain/model"

func cloneJob(j *model.Job) *model.Job {
	out := *j
	return &out
}

func cloneInvoice(inv *model.Invoice) *model.Invoice {
	out := *inv
	return &out
}

func cloneGalleryImage(g *model.GalleryImage) *model.GalleryImage {
	out := *g
	return &out
}

func cloneTransaction(t *model.Transaction) *model.Transaction {
	out := *t
	out.Metadata = cloneMap(t.Metadata)
	return &out
}

// cloneMap deep-copies a decoded JSON object. A nil map becomes an empty one.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
