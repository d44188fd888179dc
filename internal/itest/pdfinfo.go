//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func countPDFPages(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w\n%s", err, string(b))
	}
	for _, line := range strings.Split(string(b), "\n") {
		v, ok := strings.CutPrefix(line, "Pages:")
		if !ok {
			continue
		}
		s := strings.TrimSpace(v)
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("parse pages %q: %w", s, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("pdfinfo: no page count in output\n%s", string(b))
}
