package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

type ExportKind string

const (
	ExportProjections ExportKind = "projections"
	ExportStats       ExportKind = "stats"
)

// ExportWeekly writes a player's {week: points} object to w in integer
// week order and returns the exported points.
func (s *ProjectionService) ExportWeekly(ctx context.Context, w io.Writer, playerID, season string, kind ExportKind, weeks []string) (models.WeeklyPoints, error) {
	var (
		points models.WeeklyPoints
		err    error
	)
	switch kind {
	case ExportProjections:
		points, err = s.provider.GetWeeklyProjections(ctx, playerID, season)
	case ExportStats:
		points, err = s.provider.GetWeeklyStats(ctx, playerID, season)
	default:
		return nil, fmt.Errorf("unknown export kind %q: %w", kind, models.ErrInvalidRequest)
	}
	if err != nil {
		return nil, fmt.Errorf("exporting %s for player %s: %w", kind, playerID, err)
	}

	points = FilterWeeks(points, weeks)
	body, err := MarshalWeeklyPoints(points)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(body); err != nil {
		return nil, fmt.Errorf("writing export: %w", err)
	}
	return points, nil
}

// MarshalWeeklyPoints renders points as an indented JSON object whose keys
// follow integer week order.
func MarshalWeeklyPoints(points models.WeeklyPoints) ([]byte, error) {
	var buf bytes.Buffer
	weeks := points.Weeks()
	if len(weeks) == 0 {
		return []byte("{}\n"), nil
	}

	buf.WriteString("{\n")
	for i, week := range weeks {
		key, err := json.Marshal(week)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(points[week])
		if err != nil {
			return nil, fmt.Errorf("week %s: %w", week, err)
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(weeks)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
