package dao

import (
	"fmt"
	"strconv"

	"github.com/gridform/gridform/internal/model1"
	"github.com/spf13/cast"
)

// assignKeys gives every keyless record the next free numeric key.
func assignKeys(rr []model1.Record) []model1.Record {
	var next int
	for _, r := range rr {
		if n, err := cast.ToIntE(r.Key); err == nil && n > next {
			next = n
		}
	}

	out := make([]model1.Record, 0, len(rr))
	for _, r := range rr {
		r.Fields = r.Fields.Clone()
		if r.Key == "" {
			next++
			r.Key = strconv.Itoa(next)
		}
		out = append(out, r)
	}
	return out
}

// removeKeys drops the records with the given keys and reports how many
// were found.
func removeKeys(rr []model1.Record, keys []string) ([]model1.Record, int) {
	victims := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		victims[k] = struct{}{}
	}

	out := make([]model1.Record, 0, len(rr))
	for _, r := range rr {
		if _, ok := victims[r.Key]; ok {
			continue
		}
		out = append(out, r)
	}
	return out, len(rr) - len(out)
}

func deletedMsg(n int) string {
	if n == 0 {
		return ""
	}
	if n == 1 {
		return "1 row deleted"
	}
	return fmt.Sprintf("%d rows deleted", n)
}

func cloneRecords(rr []model1.Record) []model1.Record {
	out := make([]model1.Record, 0, len(rr))
	for _, r := range rr {
		r.Fields = r.Fields.Clone()
		out = append(out, r)
	}
	return out
}
