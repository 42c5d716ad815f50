package registry

import (
	"context"

	"github.com/charmbracelet/log"
)

// TagOutcome records the result of processing one tag (or, when Tag is
// empty, a whole repository that could not be listed).
type TagOutcome struct {
	Repository string
	Tag        string
	Digest     string
	Err        error
}

// Succeeded reports whether the tag was (or in report mode, would be)
// deleted.
func (o TagOutcome) Succeeded() bool {
	return o.Err == nil
}

// Summary is the run-level tally of a prune batch.
type Summary struct {
	Deleted int // deleted, or would-delete in report mode
	Errors  int
	Skipped int // repositories with no tags
}

// Pruner walks repositories tag by tag, resolves each tag's manifest digest
// and deletes by digest. In report mode digests are still resolved (the
// reachability check the operator wants) but no DELETE is ever issued.
type Pruner struct {
	client *Client
	apply  bool
}

// NewPruner wraps a client. apply=false is report mode.
func NewPruner(client *Client, apply bool) *Pruner {
	return &Pruner{client: client, apply: apply}
}

// Run processes the given repositories sequentially. Per-tag failures are
// recorded and never abort the batch; a repository whose tag listing fails
// is recorded as one error and the remaining repositories still run.
func (p *Pruner) Run(ctx context.Context, repos []string) ([]TagOutcome, Summary) {
	var (
		outcomes []TagOutcome
		sum      Summary
	)

	for _, repo := range repos {
		tags, err := p.client.Tags(ctx, repo)
		if err != nil {
			log.Warn("tag listing failed", "repo", repo, "err", err)
			outcomes = append(outcomes, TagOutcome{Repository: repo, Err: err})
			sum.Errors++
			continue
		}
		if len(tags) == 0 {
			log.Debug("no tags, skipping", "repo", repo)
			sum.Skipped++
			continue
		}

		for _, tag := range tags {
			outcome := p.pruneTag(ctx, repo, tag)
			outcomes = append(outcomes, outcome)
			if outcome.Err != nil {
				sum.Errors++
			} else {
				sum.Deleted++
			}
		}
	}

	return outcomes, sum
}

// pruneTag resolves one tag to its digest and deletes it in apply mode.
func (p *Pruner) pruneTag(ctx context.Context, repo, tag string) TagOutcome {
	outcome := TagOutcome{Repository: repo, Tag: tag}

	digest, err := p.client.ResolveDigest(ctx, repo, tag)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Digest = digest

	if !p.apply {
		log.Debug("would delete", "repo", repo, "tag", tag, "digest", digest)
		return outcome
	}

	outcome.Err = p.client.DeleteManifest(ctx, repo, digest)
	return outcome
}
