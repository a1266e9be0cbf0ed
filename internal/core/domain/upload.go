package domain

import "fmt"

// UploadPhase identifies one step of the add-material pipeline. The phases run
// strictly in order; a failure in one aborts every later phase.
type UploadPhase string

const (
	PhaseRender          UploadPhase = "render"
	PhaseUploadPDF       UploadPhase = "upload_pdf"
	PhaseUploadThumbnail UploadPhase = "upload_thumbnail"
	PhasePersist         UploadPhase = "persist"
)

// PhaseError tags a pipeline failure with the phase that produced it, so the
// operator sees which step to blame when resubmitting.
type PhaseError struct {
	Phase UploadPhase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
