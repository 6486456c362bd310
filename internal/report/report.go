// Package report renders per-channel average deviations in the formats the
// adev command supports.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatProm Format = "prom"
)

// ErrUnknownFormat is returned for format names Write does not support.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatCSV, FormatJSON, FormatProm:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Channel is the result for one column of the input.
type Channel struct {
	Name   string
	Mean   float64
	AvgDev float64
}

// Report holds the results for one input table.
type Report struct {
	// Source identifies the input, usually a file path or "-" for stdin.
	Source   string
	Samples  int
	Channels []Channel

	// WithMean adds channel means to the output.
	WithMean bool
}

// Write encodes reports to w. prefix names the Prometheus metric families
// and is ignored by the other formats.
func Write(w io.Writer, format Format, prefix string, reports ...Report) error {
	switch format {
	case FormatText:
		return writeText(w, reports)
	case FormatCSV:
		return writeCSV(w, reports)
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatProm:
		return writeProm(w, prefix, reports)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeText(w io.Writer, reports []Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for k, r := range reports {
		if k > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s: %d samples, %d channels\n", r.Source, r.Samples, len(r.Channels))

		if r.WithMean {
			fmt.Fprintln(tw, "CHANNEL\tADEV\tMEAN")
		} else {
			fmt.Fprintln(tw, "CHANNEL\tADEV")
		}

		for _, c := range r.Channels {
			if r.WithMean {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, formatFloat(c.AvgDev), formatFloat(c.Mean))
			} else {
				fmt.Fprintf(tw, "%s\t%s\n", c.Name, formatFloat(c.AvgDev))
			}
		}
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, reports []Report) error {
	withMean := false
	for _, r := range reports {
		withMean = withMean || r.WithMean
	}

	cw := csv.NewWriter(w)

	header := []string{"source", "channel", "samples", "adev"}
	if withMean {
		header = append(header, "mean")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		for _, c := range r.Channels {
			rec := []string{r.Source, c.Name, strconv.Itoa(r.Samples), formatFloat(c.AvgDev)}
			if withMean {
				rec = append(rec, formatFloat(c.Mean))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonFloat encodes non-finite values as null; encoding/json rejects them.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

type jsonChannel struct {
	Name   string     `json:"name"`
	AvgDev jsonFloat  `json:"adev"`
	Mean   *jsonFloat `json:"mean,omitempty"`
}

type jsonReport struct {
	Source   string        `json:"source"`
	Samples  int           `json:"samples"`
	Channels []jsonChannel `json:"channels"`
}

func writeJSON(w io.Writer, reports []Report) error {
	out := make([]jsonReport, len(reports))
	for k, r := range reports {
		chans := make([]jsonChannel, len(r.Channels))
		for h, c := range r.Channels {
			chans[h] = jsonChannel{Name: c.Name, AvgDev: jsonFloat(c.AvgDev)}
			if r.WithMean {
				m := jsonFloat(c.Mean)
				chans[h].Mean = &m
			}
		}
		out[k] = jsonReport{Source: r.Source, Samples: r.Samples, Channels: chans}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// MetricFamilies builds gauge families for reports:
// <prefix>_average_deviation and <prefix>_mean per channel, and
// <prefix>_samples per source. The mean family is only present when a
// report asks for means.
func MetricFamilies(prefix string, reports []Report) []*dto.MetricFamily {
	adev := gaugeFamily(prefix+"_average_deviation", "Average absolute deviation of each channel.")
	mean := gaugeFamily(prefix+"_mean", "Arithmetic mean of each channel.")
	samples := gaugeFamily(prefix+"_samples", "Number of samples per channel.")

	for _, r := range reports {
		src := labelPair("source", r.Source)
		samples.Metric = append(samples.Metric, gauge(float64(r.Samples), src))

		for _, c := range r.Channels {
			ch := labelPair("channel", c.Name)
			adev.Metric = append(adev.Metric, gauge(c.AvgDev, ch, src))
			if r.WithMean {
				mean.Metric = append(mean.Metric, gauge(c.Mean, ch, src))
			}
		}
	}

	families := []*dto.MetricFamily{adev}
	if len(mean.Metric) > 0 {
		families = append(families, mean)
	}
	return append(families, samples)
}

func writeProm(w io.Writer, prefix string, reports []Report) error {
	for _, mf := range MetricFamilies(prefix, reports) {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(v float64, labels ...*dto.LabelPair) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
