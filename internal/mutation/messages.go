package mutation

// Notice is a user-facing notification title and body.
type Notice struct {
	Title   string
	Message string
}

// Messages holds the notification text for one resource.
type Messages struct {
	Created Notice
	Updated Notice
	Deleted Notice

	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

func (m Messages) success(op Op) Notice {
	switch op {
	case OpCreate:
		return m.Created
	case OpUpdate:
		return m.Updated
	default:
		return m.Deleted
	}
}

func (m Messages) failure(op Op) string {
	switch op {
	case OpCreate:
		return m.CreateFailed
	case OpUpdate:
		return m.UpdateFailed
	default:
		return m.DeleteFailed
	}
}

var (
	JobMessages = Messages{
		Created:      Notice{"Job Posted", "Your job has been posted successfully"},
		Updated:      Notice{"Job Updated", "Your job posting has been updated successfully"},
		Deleted:      Notice{"Job Deleted", "Your job posting has been deleted successfully"},
		CreateFailed: "Failed to post job",
		UpdateFailed: "Failed to update job posting",
		DeleteFailed: "Failed to delete job posting",
	}

	InvoiceMessages = Messages{
		Created:      Notice{"Invoice Created", "Your invoice has been created successfully"},
		Updated:      Notice{"Invoice Updated", "Your invoice has been updated successfully"},
		Deleted:      Notice{"Invoice Deleted", "Your invoice has been deleted successfully"},
		CreateFailed: "Failed to create invoice",
		UpdateFailed: "Failed to update invoice",
		DeleteFailed: "Failed to delete invoice",
	}

	TransactionMessages = Messages{
		Created:      Notice{"Transaction Added", "Your transaction has been recorded successfully"},
		Updated:      Notice{"Transaction Updated", "Your transaction has been updated successfully"},
		Deleted:      Notice{"Transaction Deleted", "Your transaction has been deleted successfully"},
		CreateFailed: "Failed to add transaction",
		UpdateFailed: "Failed to update transaction",
		DeleteFailed: "Failed to delete transaction",
	}

	GalleryMessages = Messages{
		Created:      Notice{"Image Added", "Your image has been added to the gallery"},
		Updated:      Notice{"Image Updated", "Your gallery image has been updated successfully"},
		Deleted:      Notice{"Image Deleted", "Your image has been removed from the gallery"},
		CreateFailed: "Failed to add image",
		UpdateFailed: "Failed to update image",
		DeleteFailed: "Failed to delete image",
	}
)
