// Package nightly converts raw sleep intervals into per-night totals.
// A "night" is a 24-hour bucket anchored at a cutoff hour (noon by
// default), so sleep at 2am counts toward the previous evening's bucket.
package nightly

import (
	"math"
	"sort"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
)

// DefaultCutoffHour is the local hour at which one night's bucket ends and
// the next begins.
const DefaultCutoffHour = 12

// BucketStart returns the start instant of the night bucket containing at.
// An instant whose local hour is before cutoffHour belongs to the bucket
// that started at cutoffHour the previous calendar day.
func BucketStart(at time.Time, cutoffHour int, loc *time.Location) time.Time {
	lt := at.In(loc)
	anchor := time.Date(lt.Year(), lt.Month(), lt.Day(), cutoffHour, 0, 0, 0, loc)
	if lt.Before(anchor) {
		anchor = anchor.AddDate(0, 0, -1)
	}
	return anchor
}

// Merge filters, clips, sorts and merges raw intervals into non-overlapping
// runs of asleep time within [rangeStart, rangeEnd). User-entered intervals
// and non-asleep categories are excluded; touching intervals merge.
func Merge(intervals []domain.SleepInterval, rangeStart, rangeEnd time.Time) []domain.MergedInterval {
	kept := make([]domain.MergedInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Source == domain.SourceUserEntered {
			continue
		}
		if !iv.Category.IsAsleep() {
			continue
		}
		s := iv.StartAt
		if s.Before(rangeStart) {
			s = rangeStart
		}
		e := iv.EndAt
		if e.After(rangeEnd) {
			e = rangeEnd
		}
		if s.Before(e) {
			kept = append(kept, domain.MergedInterval{Start: s, End: e})
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start.Before(kept[j].Start)
	})

	merged := kept[:0]
	for _, iv := range kept {
		if n := len(merged); n > 0 && !iv.Start.After(merged[n-1].End) {
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// Aggregate produces one SleepDay per night bucket in [rangeStart, rangeEnd],
// including zero-total buckets. Hours are rounded to one decimal place.
// Pure: the result depends only on the arguments.
func Aggregate(intervals []domain.SleepInterval, rangeStart, rangeEnd time.Time, cutoffHour int, loc *time.Location) []domain.SleepDay {
	if loc == nil {
		loc = time.UTC
	}
	if rangeEnd.Before(rangeStart) {
		return nil
	}

	firstBucket := BucketStart(rangeStart, cutoffHour, loc)
	lastBucket := BucketStart(rangeEnd, cutoffHour, loc)

	var bucketStarts []time.Time
	for d := firstBucket; !d.After(lastBucket); d = d.AddDate(0, 0, 1) {
		bucketStarts = append(bucketStarts, d)
	}
	if len(bucketStarts) == 0 {
		return nil
	}

	// Clip the merge to the full span of the buckets so a night straddling
	// the range edge still contributes its in-bucket portion.
	clipStart := firstBucket
	clipEnd := lastBucket.AddDate(0, 0, 1)
	merged := Merge(intervals, clipStart, clipEnd)

	totals := make(map[time.Time]float64, len(bucketStarts))
	for _, b := range bucketStarts {
		totals[b] = 0
	}

	for _, iv := range merged {
		segStart := iv.Start
		for segStart.Before(iv.End) {
			bStart := BucketStart(segStart, cutoffHour, loc)
			bEnd := bStart.AddDate(0, 0, 1)
			clippedEnd := iv.End
			if bEnd.Before(clippedEnd) {
				clippedEnd = bEnd
			}
			if overlap := clippedEnd.Sub(segStart).Seconds(); overlap > 0 {
				totals[bStart] += overlap
			}
			segStart = clippedEnd
		}
	}

	days := make([]domain.SleepDay, 0, len(bucketStarts))
	for _, b := range bucketStarts {
		hours := totals[b] / 3600.0
		days = append(days, domain.SleepDay{
			Date:  b,
			Hours: math.Round(hours*10) / 10,
		})
	}
	return days
}
