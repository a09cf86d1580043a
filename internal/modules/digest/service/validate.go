package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/reshetovitsme/daily-product-bot/internal/shared/errors"
	"github.com/samber/oops"
)

var headerPattern = regexp.MustCompile(`^(\d+)\.\s*\S`)

// validateTemplate checks that text holds exactly count entries numbered
// 1..count, each a header line followed by three bullet lines.
func validateTemplate(text string, count int) error {
	errb := oops.In("digest").With("expected_items", count)

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) != count*4 {
		return errb.With("lines", len(lines)).Wrap(errors.ErrTemplateMismatch)
	}

	for i := 0; i < count; i++ {
		header := lines[i*4]
		m := headerPattern.FindStringSubmatch(header)
		if m == nil {
			return errb.With("entry", i+1, "line", header).Wrap(errors.ErrTemplateMismatch)
		}
		if n, _ := strconv.Atoi(m[1]); n != i+1 {
			return errb.With("entry", i+1, "numbered", n).Wrap(errors.ErrTemplateMismatch)
		}
		for _, bullet := range lines[i*4+1 : i*4+4] {
			if !strings.HasPrefix(bullet, bulletPrefix) {
				return errb.With("entry", i+1, "line", bullet).Wrap(errors.ErrTemplateMismatch)
			}
		}
	}

	return nil
}
