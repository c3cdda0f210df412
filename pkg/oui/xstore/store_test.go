package xstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

func rec(mac, org string) xregistry.Record {
	id := mac[0:2] + mac[3:5] + mac[6:8]
	return xregistry.Record{MAC: mac, CompanyID: id, Organization: org}
}

func TestStore_Empty(t *testing.T) {
	var s Store
	assert.False(t, s.IsLoaded())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Records())
	assert.True(t, s.LoadedAt().IsZero())

	_, ok := s.Lookup("30:23:03")
	assert.False(t, ok)
}

func TestStore_Lookup(t *testing.T) {
	s := New()
	s.ReplaceAll([]xregistry.Record{
		rec("30:23:03", "Belkin International Inc."),
		rec("00:1B:63", "Apple, Inc."),
	})
	require.True(t, s.IsLoaded())

	got, ok := s.Lookup("30:23:03")
	require.True(t, ok)
	assert.Equal(t, "Belkin International Inc.", got.Organization)

	_, ok = s.Lookup("30:23:04")
	assert.False(t, ok)
	_, ok = s.Lookup("30-23-03")
	assert.False(t, ok, "lookup is exact on the canonical key")
}

func TestStore_DuplicateFirstWins(t *testing.T) {
	s := New()
	s.ReplaceAll([]xregistry.Record{
		rec("30:23:03", "first"),
		rec("00:1B:63", "other"),
		rec("30:23:03", "second"),
	})

	got, ok := s.Lookup("30:23:03")
	require.True(t, ok)
	assert.Equal(t, "first", got.Organization)
	assert.Equal(t, 3, s.Len())
}

func TestStore_ReplaceAllNeverMerges(t *testing.T) {
	s := New()
	s.ReplaceAll([]xregistry.Record{rec("30:23:03", "Belkin")})
	s.ReplaceAll([]xregistry.Record{rec("00:1B:63", "Apple")})

	_, ok := s.Lookup("30:23:03")
	assert.False(t, ok)
	_, ok = s.Lookup("00:1B:63")
	assert.True(t, ok)

	s.ReplaceAll(nil)
	assert.True(t, s.IsLoaded(), "an empty replace still counts as loaded")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []xregistry.Record{}, s.Records())
}

func TestStore_CopiesInput(t *testing.T) {
	in := []xregistry.Record{rec("30:23:03", "Belkin")}
	s := New()
	s.ReplaceAll(in)
	in[0].Organization = "mutated"

	out := s.Records()
	out[0].Organization = "mutated again"

	got, _ := s.Lookup("30:23:03")
	assert.Equal(t, "Belkin", got.Organization)
}

func TestStore_LoadedAt(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &Store{now: func() time.Time { return at }}
	s.ReplaceAll([]xregistry.Record{rec("30:23:03", "Belkin")})
	assert.Equal(t, at, s.LoadedAt())
}

// 并发读者只会看到完整的旧快照或完整的新快照。
func TestStore_ConcurrentReplace(t *testing.T) {
	const size = 64
	gen := func(tag string) []xregistry.Record {
		out := make([]xregistry.Record, size)
		for i := range size {
			out[i] = rec(fmt.Sprintf("00:00:%02X", i), tag)
		}
		return out
	}

	s := New()
	s.ReplaceAll(gen("a"))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				records := s.Records()
				if !assert.Len(t, records, size) {
					return
				}
				for _, r := range records[1:] {
					if !assert.Equal(t, records[0].Organization, r.Organization, "torn snapshot") {
						return
					}
				}
			}
		}()
	}

	for i := range 200 {
		if i%2 == 0 {
			s.ReplaceAll(gen("b"))
		} else {
			s.ReplaceAll(gen("a"))
		}
	}
	close(stop)
	wg.Wait()
}
