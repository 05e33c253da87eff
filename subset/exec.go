package subset

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ExecEngine drives an external subsetting tool with an hb-subset compatible
// command line:
//
//	<path> --unicodes=61,62,63 --output-file=<out> <in>
//
// The tool is expected to read the full font, keep only the requested
// codepoints and write the result in the output file's format.
type ExecEngine struct {
	path string
	log  *zap.Logger
}

func NewExecEngine(path string, log *zap.Logger) (*ExecEngine, error) {
	if len(path) == 0 {
		return nil, errors.New("no subsetting engine configured")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecEngine{path: path, log: log.Named("engine")}, nil
}

func (e *ExecEngine) Subset(font []byte, codepoints []uint32) ([]byte, error) {
	dir, err := os.MkdirTemp("", "fontcull-subset-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.font")
	out := filepath.Join(dir, "out.woff2")
	if err := os.WriteFile(in, font, 0600); err != nil {
		return nil, err
	}

	var unicodes strings.Builder
	for i, cp := range codepoints {
		if i > 0 {
			unicodes.WriteByte(',')
		}
		fmt.Fprintf(&unicodes, "%X", cp)
	}

	cmd := exec.Command(e.path, "--unicodes="+unicodes.String(), "--output-file="+out, in)
	if output, err := cmd.CombinedOutput(); err != nil {
		e.log.Debug("Engine invocation failed", zap.String("path", e.path), zap.ByteString("output", output))
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
	}

	return os.ReadFile(out)
}
