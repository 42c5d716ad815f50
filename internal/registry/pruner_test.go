package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry serves tag listings and manifests for a fixed set of
// repositories and records every destructive call.
type fakeRegistry struct {
	mu      sync.Mutex
	tags    map[string][]string
	deletes []string
	// deleteStatus overrides the response for a digest, default 202.
	deleteStatus map[string]int
}

func (f *fakeRegistry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v2/")

	switch {
	case strings.HasSuffix(path, "/tags/list"):
		repo := strings.TrimSuffix(path, "/tags/list")
		tags, ok := f.tags[repo]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(tagsResponse{Name: repo, Tags: tags})

	case r.Method == http.MethodHead && strings.Contains(path, "/manifests/"):
		tag := path[strings.LastIndex(path, "/")+1:]
		w.Header().Set("Docker-Content-Digest", "sha256:"+tag)
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodDelete && strings.Contains(path, "/manifests/"):
		digest := path[strings.LastIndex(path, "/")+1:]
		f.deletes = append(f.deletes, digest)
		if status, ok := f.deleteStatus[digest]; ok {
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusAccepted)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestPrunerPartialFailureTally(t *testing.T) {
	fake := &fakeRegistry{
		tags: map[string][]string{
			"app": {"a", "b"},
			"db":  {"c"},
		},
		deleteStatus: map[string]int{"sha256:b": http.StatusInternalServerError},
	}
	client, _ := newTestClient(t, fake)

	outcomes, sum := NewPruner(client, true).Run(context.Background(), []string{"app", "db"})

	// Tag b failed but every remaining tag and repository was attempted.
	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, 1, sum.Errors)
	assert.Len(t, outcomes, 3)
	assert.ElementsMatch(t, []string{"sha256:a", "sha256:b", "sha256:c"}, fake.deletes)

	var failed *TagOutcome
	for i := range outcomes {
		if outcomes[i].Err != nil {
			failed = &outcomes[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "b", failed.Tag)
	assert.ErrorContains(t, failed.Err, "500")
}

func TestPrunerReportModeNeverDeletes(t *testing.T) {
	fake := &fakeRegistry{
		tags: map[string][]string{"app": {"a", "b"}},
	}
	client, _ := newTestClient(t, fake)

	outcomes, sum := NewPruner(client, false).Run(context.Background(), []string{"app"})

	// Digests are still resolved, but no DELETE is ever issued.
	assert.Empty(t, fake.deletes)
	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, 0, sum.Errors)
	for _, o := range outcomes {
		assert.True(t, o.Succeeded())
		assert.NotEmpty(t, o.Digest)
	}
}

func TestPrunerSkipsEmptyRepository(t *testing.T) {
	fake := &fakeRegistry{
		tags: map[string][]string{
			"empty": {},
			"app":   {"a"},
		},
	}
	client, _ := newTestClient(t, fake)

	_, sum := NewPruner(client, true).Run(context.Background(), []string{"empty", "app"})

	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 1, sum.Deleted)
	assert.Equal(t, 0, sum.Errors)
}

func TestPrunerRecordsUnlistableRepository(t *testing.T) {
	fake := &fakeRegistry{
		tags: map[string][]string{"app": {"a"}},
	}
	client, _ := newTestClient(t, fake)

	outcomes, sum := NewPruner(client, true).Run(context.Background(), []string{"missing", "app"})

	// The unlistable repository is one error; the rest still runs.
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 1, sum.Deleted)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "missing", outcomes[0].Repository)
	assert.Error(t, outcomes[0].Err)
}
