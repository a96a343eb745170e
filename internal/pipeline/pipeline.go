// Package pipeline orchestrates the conversion of one raw MagnaProbe
// dataset into clean, projected, quality-checked records: normalize,
// consolidate coordinates, project, cull calibration points, apply
// quality rules.
package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"github.com/snowsci/magnaprobe-etl/internal/config"
	"github.com/snowsci/magnaprobe-etl/internal/crs"
	"github.com/snowsci/magnaprobe-etl/internal/domain"
	"github.com/snowsci/magnaprobe-etl/internal/observability"
)

// Drop reasons for rows that never become CleanRecords. Quality-rule
// drops are counted under the rule name instead.
const (
	ReasonBadTimestamp = "bad_timestamp"
	ReasonMalformedRow = "malformed_row"
)

// Summary accounts for every input row of a run: RowsRead equals
// RowsExported plus RowsDropped.
type Summary struct {
	RowsRead     int
	RowsExported int
	RowsDropped  int

	// Dropped breaks the removed rows down by reason: a parse-failure
	// reason or the name of a quality rule carried by a dropped row. A
	// row with several flags counts under each, so the map may sum to
	// more than RowsDropped.
	Dropped map[string]int

	// Flagged counts kept rows by the rule that labeled them.
	Flagged map[string]int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Pipeline holds the configuration and observability for conversion
// runs. One Pipeline serves any number of Process calls.
type Pipeline struct {
	cal     domain.Calibration
	th      domain.Thresholds
	pol     domain.Policies
	cull    domain.CalibrationCull
	proj    *crs.Projector
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline projecting into proj's coordinate system.
func New(cfg *config.Config, proj *crs.Projector, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		cal:     cfg.DomainCalibration(),
		th:      cfg.Thresholds(),
		pol:     cfg.Policies(),
		cull:    cfg.CalibrationCull(),
		proj:    proj,
		logger:  logger,
		metrics: metrics,
	}
}

// Process converts one dataset. Row-level failures are logged, counted,
// and skipped; Process itself never fails. The returned records are in
// input order.
func (p *Pipeline) Process(raws []domain.RawRecord) ([]domain.CleanRecord, *Summary) {
	summary := &Summary{
		RowsRead:  len(raws),
		Dropped:   make(map[string]int),
		Flagged:   make(map[string]int),
		StartedAt: clock.Now(),
	}
	p.metrics.RowsRead.Add(float64(len(raws)))

	pol := p.effectivePolicies(raws)
	norm := domain.NewNormalizer(p.cal)

	recs := make([]domain.CleanRecord, 0, len(raws))
	for _, raw := range raws {
		rec, ok := p.buildRecord(norm, raw, pol, summary)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	recs = domain.FlagCalibrationPoints(recs, p.cull, pol)
	for i, rec := range recs {
		recs[i] = domain.EvaluateQuality(rec, p.th, pol)
	}

	kept, flagged, dropped := domain.Resolve(recs, pol)
	for rule, n := range flagged {
		summary.Flagged[string(rule)] += n
		p.metrics.RowsFlagged.WithLabelValues(string(rule)).Add(float64(n))
	}
	for rule, n := range dropped {
		summary.Dropped[string(rule)] += n
		p.metrics.RowsDropped.WithLabelValues(string(rule)).Add(float64(n))
	}
	summary.RowsDropped += len(recs) - len(kept)

	summary.RowsExported = len(kept)
	summary.FinishedAt = clock.Now()
	p.metrics.RowsExported.Add(float64(len(kept)))
	p.metrics.RunDuration.Set(summary.FinishedAt.Sub(summary.StartedAt).Seconds())

	return kept, summary
}

// buildRecord runs the row-level stages: normalize, consolidate
// coordinates, project. Returns false when the row is dropped.
func (p *Pipeline) buildRecord(norm *domain.Normalizer, raw domain.RawRecord, pol domain.Policies, summary *Summary) (domain.CleanRecord, bool) {
	rec, err := norm.Normalize(raw)
	if err != nil {
		reason := ReasonMalformedRow
		var tsErr *domain.TimestampParseError
		if errors.As(err, &tsErr) {
			reason = ReasonBadTimestamp
		}
		p.logger.Warn("dropping row", "line", raw.Line, "reason", reason, "error", err)
		summary.Dropped[reason]++
		summary.RowsDropped++
		p.metrics.RowsDropped.WithLabelValues(reason).Inc()
		return domain.CleanRecord{}, false
	}

	rec, err = domain.ConsolidateCoordinates(rec, raw.Line)
	if err != nil {
		// Out-of-range coordinates are a quality condition, not a parse
		// failure: keep the row, flag it, leave the geometry unprojected.
		p.logger.Warn("coordinates out of range", "line", raw.Line, "error", err)
		if pol.For(domain.RuleCoordinateRange) != domain.PolicyOff {
			rec = rec.WithFlag(domain.RuleCoordinateRange)
		}
		return rec, true
	}

	rec.Easting, rec.Northing = p.proj.Project(rec.Latitude, rec.Longitude)
	return rec, true
}

// effectivePolicies disables the GPS-quality rules when the input file
// carries no fix-quality or satellite-count channel, so older firmware
// without those columns is not blanket-flagged.
func (p *Pipeline) effectivePolicies(raws []domain.RawRecord) domain.Policies {
	haveFix, haveSats := false, false
	for _, raw := range raws {
		haveFix = haveFix || raw.FixQuality != ""
		haveSats = haveSats || raw.Satellites != ""
	}
	if haveFix && haveSats {
		return p.pol
	}

	pol := make(domain.Policies, len(p.pol)+2)
	for r, v := range p.pol {
		pol[r] = v
	}
	if !haveFix {
		pol[domain.RuleNoFix] = domain.PolicyOff
	}
	if !haveSats {
		pol[domain.RuleLowSatellites] = domain.PolicyOff
	}
	return pol
}
