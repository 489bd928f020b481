// Package loop runs Space Waves on the local terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacewaves/internal/loop/client"
)

// Run plays on the process's own terminal until the player quits or ctx is
// cancelled. The terminal must already be in raw mode.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, logger *log.Logger) error {
	c := client.NewClient(r, w, client.Options{
		Username: "local",
		Logger:   logger,
	})
	return c.Run(ctx)
}
