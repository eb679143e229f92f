// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"namescreen/internal/decision"
	"namescreen/internal/engine"
	"namescreen/internal/observability"
)

// Matching method labels stamped on decisions.
const (
	MethodLLM      = "llm"
	MethodFallback = "rule-based-fallback"
)

// articleExcerptLimit bounds how much article text goes into the prompt.
const articleExcerptLimit = 500

// Matcher reviews rule-engine decisions with a language model. The rule
// engine always runs first so the structured assessments survive into the
// audit record regardless of which method produced the verdict.
type Matcher struct {
	caller   Caller
	engine   *engine.Engine
	observer *observability.Observer
	cacheDir string
}

// NewMatcher creates a Matcher. cacheDir may be empty to disable the
// response cache.
func NewMatcher(caller Caller, eng *engine.Engine, observer *observability.Observer, cacheDir string) *Matcher {
	return &Matcher{caller: caller, engine: eng, observer: observer, cacheDir: cacheDir}
}

// Match screens the target against the extracted candidates, letting the
// model weigh the article context. When the model call or response parsing
// fails the rule-based decision is returned unchanged, with its method
// relabeled so the report shows the fallback happened.
func (m *Matcher) Match(ctx context.Context, targetName, articleText, langCode string, candidates []decision.Candidate) (decision.MatchDecision, error) {
	done := m.observer.StartTiming("llm", "match")

	d, err := m.engine.MatchCandidates(targetName, candidates)
	if err != nil {
		done(false, nil)
		return decision.MatchDecision{}, err
	}

	prompt := buildPrompt(targetName, articleText, langCode, candidates)
	key := cacheKey(targetName, candidates)

	if cached, ok := m.cachedVerdict(key); ok {
		applyVerdict(&d, cached)
		done(true, map[string]any{"verdict": string(d.Verdict), "cache": "hit"})
		return d, nil
	}

	raw, err := m.caller.Generate(ctx, prompt)
	if err != nil {
		m.observer.Log(observability.OperationData{
			Component: "llm",
			Operation: "fallback",
			Target:    targetName,
			Success:   true,
			Metadata:  map[string]any{"error": err.Error()},
		})
		d.Method = MethodFallback
		done(true, map[string]any{"verdict": string(d.Verdict), "fallback": true})
		return d, nil
	}

	verdict, perr := parseResponse(raw)
	if perr != nil {
		m.observer.Log(observability.OperationData{
			Component: "llm",
			Operation: "fallback",
			Target:    targetName,
			Success:   true,
			Metadata:  map[string]any{"error": perr.Error()},
		})
		d.Method = MethodFallback
		done(true, map[string]any{"verdict": string(d.Verdict), "fallback": true})
		return d, nil
	}

	m.storeVerdict(key, verdict)
	applyVerdict(&d, verdict)
	done(true, map[string]any{"verdict": string(d.Verdict), "confidence": d.Confidence})
	return d, nil
}

// llmVerdict is the parsed model response, also the cache record.
type llmVerdict struct {
	Result      string  `json:"result"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

func applyVerdict(d *decision.MatchDecision, v llmVerdict) {
	if v.Result == string(decision.VerdictMatch) {
		d.Verdict = decision.VerdictMatch
	} else {
		d.Verdict = decision.VerdictNoMatch
	}
	d.Confidence = v.Confidence
	d.Explanation = v.Explanation
	d.Method = MethodLLM
}

// buildPrompt renders the screening prompt: compliance guidance, the article
// excerpt, the extracted persons, and the required response format.
func buildPrompt(targetName, articleText, langCode string, candidates []decision.Candidate) string {
	var entities strings.Builder
	if len(candidates) == 0 {
		entities.WriteString("No individual persons were extracted from the article.\n")
	} else {
		for i, c := range candidates {
			fmt.Fprintf(&entities, "%d. NAME: %q\n", i+1, c.Text)
			if c.Context != "" {
				fmt.Fprintf(&entities, "   CONTEXT: ...%s...\n", c.Context)
			}
			if c.Confidence > 0 {
				fmt.Fprintf(&entities, "   CONFIDENCE: %.2f\n", c.Confidence)
			}
		}
	}

	return fmt.Sprintf(`You are screening for INDIVIDUAL PEOPLE, not organizations, companies, or groups.

## COMPLIANCE GUIDELINES:
1. FALSE NEGATIVES are regulatory violations: missing a real individual match can result in sanctions.
2. FALSE POSITIVES are manageable costs: extra analyst review is acceptable.
3. When in doubt between similar names, provide detailed reasoning for your decision.

## SIMILARITY GUIDANCE:
- Identical names: MATCH (high confidence)
- Common nicknames (Jim/James, Bob/Robert, Bill/William): MATCH with explanation
- Established spelling variations (Mohammad/Mohammed, Catherine/Katherine): MATCH with explanation
- Cultural name variations (Christopher/Christoph, Michael/Mikhail): MATCH with explanation
- Different names that sound similar (Carol/Caroline, Anne/Annie): NO_MATCH unless strong contextual evidence
- Similar surnames with different first names: NO_MATCH unless context strongly suggests same person
- Strong contextual evidence alone cannot override clear name differences.

## YOUR TASK:
Analyze whether the target individual %q matches any individual person mentioned in this adverse media article.

### ARTICLE (%s):
%s

### INDIVIDUAL PERSONS EXTRACTED:
%s
TARGET INDIVIDUAL TO MATCH: %q

## REQUIRED RESPONSE FORMAT:
RESULT: [MATCH or NO_MATCH]
CONFIDENCE: [0.00 to 1.00]
EXPLANATION: [Detailed reasoning explaining why this is or is not the same individual person.]`,
		targetName, strings.ToUpper(langCode), excerpt(articleText), entities.String(), targetName)
}

func excerpt(text string) string {
	if len(text) <= articleExcerptLimit {
		return text
	}
	cut := articleExcerptLimit
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut] + "..."
}

var (
	resultRe      = regexp.MustCompile(`(?i)\*{0,2}RESULT:?\*{0,2}\s*(MATCH|NO_MATCH)`)
	confidenceRe  = regexp.MustCompile(`(?i)\*{0,2}CONFIDENCE:?\*{0,2}\s*([\d.]+)`)
	explanationRe = regexp.MustCompile(`(?is)\*{0,2}EXPLANATION:?\*{0,2}\s*(.+?)(?:\n\n|$)`)
)

// parseResponse extracts RESULT, CONFIDENCE, and EXPLANATION from the model
// output, clamping confidence into [0,1].
func parseResponse(raw string) (llmVerdict, error) {
	rm := resultRe.FindStringSubmatch(raw)
	if rm == nil {
		return llmVerdict{}, fmt.Errorf("no RESULT field in model response")
	}
	v := llmVerdict{Result: strings.ToUpper(rm[1]), Confidence: 0.5}

	if cm := confidenceRe.FindStringSubmatch(raw); cm != nil {
		if f, err := strconv.ParseFloat(cm[1], 64); err == nil {
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}
			v.Confidence = f
		}
	}
	if em := explanationRe.FindStringSubmatch(raw); em != nil {
		v.Explanation = strings.TrimSpace(em[1])
	}
	if v.Explanation == "" {
		v.Explanation = "Model returned a verdict without detailed reasoning."
	}
	return v, nil
}

// cacheKey derives a stable key from the target and the candidate set, order
// independent, so a re-screened article replays the recorded verdict.
func cacheKey(targetName string, candidates []decision.Candidate) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = strings.ToLower(c.Text)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(strings.ToLower(targetName)))
	for _, n := range names {
		h.Write([]byte{0})
		h.Write([]byte(n))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (m *Matcher) cachedVerdict(key string) (llmVerdict, bool) {
	if m.cacheDir == "" {
		return llmVerdict{}, false
	}
	data, err := os.ReadFile(filepath.Join(m.cacheDir, key+".json"))
	if err != nil {
		return llmVerdict{}, false
	}
	var v llmVerdict
	if err := json.Unmarshal(data, &v); err != nil {
		return llmVerdict{}, false
	}
	return v, true
}

func (m *Matcher) storeVerdict(key string, v llmVerdict) {
	if m.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(m.cacheDir, 0o750); err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(m.cacheDir, key+".json"), data, 0o600)
}
