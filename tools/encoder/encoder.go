package encoder

import (
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
)

// Encoder is the narrow capability the pipeline needs from the external
// video encoder: one method per invocation shape. The process exit status
// is the only success signal either of them consumes.
type Encoder interface {
	EncodeSequence(req models.EncodeRequest) error
	CompositeSideBySide(req models.CompositeRequest) error
}
