// Package orchestrator runs one conversion end to end: decode the source
// document, flatten it, summarize it and persist the table.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/NovantaCreativeTeam/pracsi-script/clients"
	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
	"github.com/NovantaCreativeTeam/pracsi-script/eaf"
	"github.com/NovantaCreativeTeam/pracsi-script/table"
	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

// ErrInvalidInput marks failures caused by the submitted document or
// request rather than by the conversion environment.
var ErrInvalidInput = errors.New("invalid input")

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	log  logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, http: clients.NewHTTP(), log: log}
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// Run converts the document at inPath; out is as in Request.Output.
func (p *Pipeline) Run(ctx context.Context, inPath, out string) (*Result, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	return p.ConvertReader(ctx, f, Request{
		Source:  inPath,
		Output:  out,
		Summary: p.cfg.Output.Summary,
	})
}

// ConvertReader converts the document read from r. Nothing is written
// unless the whole conversion succeeds.
func (p *Pipeline) ConvertReader(ctx context.Context, r io.Reader, req Request) (*Result, error) {
	log := p.log.WithField("source", req.Source)

	format := req.Format
	if format == "" {
		var err error
		if format, err = table.ParseFormat(p.cfg.Output.Format); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	doc, err := eaf.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	log.WithFields(logrus.Fields{
		"tiers":      len(doc.Tiers),
		"time_slots": len(doc.TimeSlots),
	}).Debug("document decoded")
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	conv, err := transcript.Convert(doc, p.cfg.TranscriptLayout(), log)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", req.Source, err)
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	sum := summarize(req.Source, conv.Rows, len(conv.Model.Dropped))

	sid, outPath, err := outputPath(p.cfg.Paths.Outputs, req.Source, req.Output, format)
	if err != nil {
		return nil, err
	}
	tbl := table.New(transcript.Columns, transcript.Records(conv.Rows))
	if err := writeTable(outPath, format, tbl); err != nil {
		return nil, err
	}

	res := &Result{SessionID: sid, Output: outPath, Format: format, Summary: sum}
	if req.Summary {
		res.SummaryPath = summaryPath(outPath)
		if err := writeJSON(res.SummaryPath, sum); err != nil {
			os.Remove(outPath)
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"output":       outPath,
		"format":       format,
		"rows":         sum.Rows,
		"turns":        sum.Turns,
		"pauses":       sum.Pauses,
		"notes":        sum.Notes,
		"dropped":      sum.Dropped,
		"overlap_rate": fmt.Sprintf("%.3f", sum.OverlapRate),
	}).Info("transcript converted")
	return res, nil
}

// RunRemote sends the document at inPath to the server at baseURL and stores
// the returned table like Run would. The summary is not available remotely.
func (p *Pipeline) RunRemote(ctx context.Context, baseURL, inPath, out string) (*Result, error) {
	format, err := table.ParseFormat(p.cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sid, outPath, err := outputPath(p.cfg.Paths.Outputs, inPath, out, format)
	if err != nil {
		return nil, err
	}
	err = atomicWrite(outPath, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		if _, err := p.http.Convert(ctx, baseURL, inPath, string(format), f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"source": inPath,
		"server": baseURL,
		"output": outPath,
	}).Info("transcript converted remotely")
	return &Result{SessionID: sid, Output: outPath, Format: format, Summary: Summary{Source: inPath}}, nil
}
