package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/vitos/vault_scanner/internal/domain"
)

const (
	StatusOK     = 200
	DefaultLimit = 5
	missingValue = "None"
)

var rawOptions = &pretty.Options{Width: 80, Indent: "  "}

type ReportOptions struct {
	Raw   bool // print the decoded body and skip normalization and ranking
	Limit int  // number of summary lines, DefaultLimit when <= 0
}

// StatusError is returned when the envelope decodes but its status is not 200.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response not ok (status %d): %s", e.Status, e.Body)
}

type VaultService struct {
	source domain.VaultSource
	logger *zap.Logger
}

func NewVaultService(source domain.VaultSource, logger *zap.Logger) *VaultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VaultService{
		source: source,
		logger: logger,
	}
}

// Report fetches the vaults for q and writes the report to w. The request URL
// is always written first, even if the call then fails.
func (s *VaultService) Report(ctx context.Context, w io.Writer, q domain.VaultQuery, opts ReportOptions) error {
	endpoint, err := s.source.VaultsURL(q)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "URL:", endpoint)

	resp, err := s.source.GetVaults(ctx, q)
	if err != nil {
		return errors.Wrap(err, "HTTP/JSON error")
	}

	if opts.Raw {
		out := pretty.PrettyOptions(resp.Body, rawOptions)
		if !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		_, err := w.Write(out)
		return err
	}

	if status := resp.Status(); status != StatusOK {
		return &StatusError{Status: status, Body: string(bytes.TrimSpace(resp.Body))}
	}

	vaults := NormalizeTokenVaults(resp.TokenVaults())
	RankByNetAPR(vaults)
	s.logger.Debug("Vaults normalized", zap.Int("count", len(vaults)))

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	fmt.Fprintln(w, "Vaults received:", len(vaults))
	for _, v := range vaults[:min(limit, len(vaults))] {
		fmt.Fprintf(w, "- %s | %s | netAPR: %s | %s\n",
			display(v.Name()), display(v.Symbol()), display(v.NetAPR()), display(v.Address()))
	}
	return nil
}

// display prints a field the way it came in: strings unquoted, anything else
// as raw JSON, and None for missing or null values.
func display(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return missingValue
	case gjson.String:
		return r.Str
	default:
		return r.Raw
	}
}
