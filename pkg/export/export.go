package export

import (
	"fmt"
	"io"

	"github.com/ssc-cloud/ssc-billing-logger/pkg/models"
)

// WriteTSV writes one line per volume: the volume id and the Unix timestamp
// of its deletion, separated by a single tab. No header row. The downstream
// logger consumes exactly this shape from the redirected cron output.
func WriteTSV(w io.Writer, vols []models.DeletedVolume) error {
	for _, v := range vols {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", v.ID, v.DeletedAt.Unix()); err != nil {
			return fmt.Errorf("write volume row: %w", err)
		}
	}
	return nil
}
