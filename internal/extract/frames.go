package extract

// Frame is the slice of browser-frame capability the DOM heuristics need:
// evaluate a script and report the frame URL. playwright.Frame satisfies it,
// and tests substitute fakes so the heuristics run without a browser engine.
type Frame interface {
	URL() string
	Evaluate(expression string, options ...any) (any, error)
}

// FrameStat is the per-frame diagnostic snapshot.
type FrameStat struct {
	URL            string   `json:"url"`
	CTAs           int      `json:"ctas"`
	SampleHeadings []string `json:"sampleHeadings"`
	Error          string   `json:"error,omitempty"`
}

const maxFrameStats = 10

// frameTitlesScript runs the dual heuristic inside one frame. The job-link
// pass wins when it matches anything: one title per detail link, no card
// scoring needed. Otherwise anchor on CTA labels, walk up to 10 ancestors
// scoring each as a job card, and pull the best heading out of the winner.
const frameTitlesScript = `() => {
  const CTA_REGEX = /(view\s+details\s+and\s+apply|view\s+details|apply\s+now|apply)/i;
  const BAD_REGEX =
    /(opens in a new tab|already applied|current employee|search jobs|job id|employment type|location|filter results|open jobs|talent community|about us|we use cookies|cookie|privacy policy|terms of use|disclaimer|jobs\s+at\s+.+\s+at\s+|technician jobs at|create your candidate profile)/i;

  function isInsideExcludedSection(el) {
    let n = el;
    for (let i = 0; i < 20 && n; i++) {
      const c = (n.className && n.className.toString ? n.className.toString() : "") || "";
      const id = n.id || "";
      const aria = (n.getAttribute ? (n.getAttribute("aria-label") || "") + (n.getAttribute("aria-labelledby") || "") : "");
      if (/featured|recommended|highlighted|spotlight|similar-jobs|related-jobs/i.test(c + " " + id + " " + aria)) return true;
      n = n.parentElement;
    }
    return false;
  }

  const headingSelectors = [
    "h1", "h2", "h3", "h4",
    "[role='heading']",
    "[class*='title']",
    "[class*='job-title']",
    "[class*='job_title']",
    "[data-job-title]",
  ];

  function textOf(el) {
    if (!el) return "";
    return (el.innerText || "").trim();
  }

  function scoreAsJobCard(card) {
    const raw = card.innerText || "";
    let score = 0;
    if (CTA_REGEX.test(raw)) score += 2;
    if (/\b\d{5,7}\b/.test(raw)) score += 2;
    if (/(full[-\s]?time|part[-\s]?time|remote|on[-\s]?site|hybrid)/i.test(raw)) score += 1;
    if (raw.length > 100 && raw.length < 2000) score += 1;
    return score;
  }

  function findTitleInCard(card) {
    const candidates = [];
    for (const sel of headingSelectors) {
      card.querySelectorAll(sel).forEach((el) => {
        const t = textOf(el).replace(/\s+/g, " ").trim();
        if (t && !BAD_REGEX.test(t) && t.length >= 4 && t.length <= 250) candidates.push(t);
      });
    }
    // Longer headings are more likely the full job title than a section label.
    candidates.sort((a, b) => b.length - a.length);
    if (candidates.length) return candidates[0];

    const raw = card.innerText || "";
    const lines = raw
      .split("\n")
      .map((s) => s.trim())
      .filter(Boolean)
      .filter((s) => !CTA_REGEX.test(s))
      .filter((s) => !BAD_REGEX.test(s))
      .filter((s) => !/^\d{3,}$/.test(s))
      .filter((s) => !/(full[-\s]?time|part[-\s]?time)/i.test(s))
      .filter((s) => s.length >= 4 && s.length <= 250);
    return lines[0] || null;
  }

  const linkTitles = [];
  document.querySelectorAll('a[href*="/job/"]').forEach((a) => {
    const href = a.href || "";
    if (href.includes("/jobs/")) return;
    if (isInsideExcludedSection(a)) return;
    const t = textOf(a).replace(/\s+/g, " ").trim();
    if (t && !BAD_REGEX.test(t) && t.length >= 4 && t.length <= 250) linkTitles.push(t);
  });
  if (linkTitles.length > 0) return linkTitles;

  const ctas = Array.from(document.querySelectorAll("a,button,input[type='submit']"));
  const found = [];
  for (const cta of ctas) {
    const label = (cta.tagName === "INPUT" ? cta.value : cta.innerText) || "";
    const text = label.trim();
    if (!text) continue;
    if (!CTA_REGEX.test(text)) continue;
    let node = cta;
    let best = null;
    for (let i = 0; i < 10 && node; i++) {
      const score = scoreAsJobCard(node);
      if (!best || score > best.score) best = { el: node, score };
      node = node.parentElement;
    }
    if (best && best.score >= 3 && !isInsideExcludedSection(best.el)) {
      const title = findTitleInCard(best.el);
      if (title) found.push(title);
    }
  }
  return found;
}`

const ctaCountScript = `() => {
  const re = /(view\s+details\s+and\s+apply|view\s+details|apply\s+now|apply)/i;
  const els = Array.from(document.querySelectorAll("a,button,input[type='submit']"));
  return els.filter((el) => {
    const label = el.tagName === "INPUT" ? el.value : el.innerText;
    return !!label && re.test(label.trim());
  }).length;
}`

const frameStatsScript = `() => {
  const CTA_REGEX = /(view\s+details\s+and\s+apply|view\s+details|apply\s+now|apply)/i;
  const ctas = Array.from(document.querySelectorAll("a,button,input[type='submit']")).filter((el) => {
    const label = el.tagName === "INPUT" ? el.value : el.innerText;
    return !!label && CTA_REGEX.test(label.trim());
  }).length;
  const headings = Array.from(document.querySelectorAll("h1,h2,h3,h4"))
    .map((el) => (el.innerText || "").trim())
    .filter(Boolean)
    .slice(0, 8);
  return { ctas: ctas, headings: headings };
}`

// oracleDOMScript targets Oracle HCM Candidate Experience pages, where the
// list renders into data-automation-id cards, table rows, or JobOpening
// links, sometimes inside an iframe.
const oracleDOMScript = `() => {
  const bad = /(filter results|open jobs|talent community|search jobs|sign in|create account|job id|location|employment type|view details|apply now|create your candidate profile)/i;
  const out = [];
  const textOf = (el) => (el.innerText || "").trim();
  const add = (t) => {
    const s = t.replace(/\s+/g, " ").trim();
    if (s && !bad.test(s) && s.length >= 4 && s.length <= 200) out.push(s);
  };
  ["[data-automation-id*='job']", "[data-automation-id*='Job']", "[class*='JobCard']", "[class*='job-card']", "[class*='searchResult']", "[class*='SearchResult']"].forEach((sel) => {
    document.querySelectorAll(sel).forEach((card) => {
      card.querySelectorAll("h1,h2,h3,h4,[role='heading'],a").forEach((el) => add(textOf(el)));
    });
  });
  document.querySelectorAll("a[href*='JobOpening'],a[href*='jobOpening'],a[href*='JobOpeningId'],a[href*='/job/']").forEach((a) => {
    const href = a.href || "";
    if (!href.includes("/jobs/")) add(textOf(a));
  });
  document.querySelectorAll("tr[role='row'], table tbody tr").forEach((row) => {
    const first = row.querySelector("td, [role='cell']");
    if (first) add(textOf(first));
    const link = row.querySelector("a[href*='job'], a[href*='Job']");
    if (link) add(textOf(link));
  });
  document.querySelectorAll("li").forEach((li) => {
    const link = li.querySelector("a[href*='job'], a[href*='Job'], a[href*='JobOpening']");
    if (link) add(textOf(link));
    const head = li.querySelector("h2,h3,h4,strong");
    if (head) add(textOf(head));
  });
  document.querySelectorAll("a[href*='job'], a[href*='Job']").forEach((a) => {
    const href = a.href || "";
    if (!href.includes("/jobs/") && (!href.includes("search") || href.includes("JobOpening"))) add(textOf(a));
  });
  return out;
}`

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// TitlesFromFrames runs the dual heuristic in every accessible frame and
// merges the raw results. Evaluation failures (cross-origin frames) are
// skipped; a frame that cannot be read contributes nothing.
func TitlesFromFrames(frames []Frame) []string {
	var out []string
	for _, frame := range frames {
		result, err := frame.Evaluate(frameTitlesScript)
		if err != nil {
			continue
		}
		out = append(out, toStringSlice(result)...)
	}
	return out
}

// CountCTAs counts call-to-action elements across all accessible frames.
// Diagnostic only.
func CountCTAs(frames []Frame) int {
	count := 0
	for _, frame := range frames {
		result, err := frame.Evaluate(ctaCountScript)
		if err != nil {
			continue
		}
		count += toInt(result)
	}
	return count
}

// StatsForFrames collects per-frame diagnostics: which frame holds the CTAs
// and what its headings look like. Capped, since some pages carry dozens of
// tracker frames.
func StatsForFrames(frames []Frame) []FrameStat {
	var stats []FrameStat
	for _, frame := range frames {
		if len(stats) >= maxFrameStats {
			break
		}
		result, err := frame.Evaluate(frameStatsScript)
		if err != nil {
			stats = append(stats, FrameStat{URL: frame.URL(), SampleHeadings: []string{}, Error: err.Error()})
			continue
		}
		stat := FrameStat{URL: frame.URL(), SampleHeadings: []string{}}
		if m, ok := result.(map[string]any); ok {
			stat.CTAs = toInt(m["ctas"])
			stat.SampleHeadings = toStringSlice(m["headings"])
		}
		stats = append(stats, stat)
	}
	return stats
}

// OracleDOMTitles runs the vendor-specific DOM pass over every accessible
// frame and returns the merged raw candidates.
func OracleDOMTitles(frames []Frame) []string {
	var out []string
	for _, frame := range frames {
		result, err := frame.Evaluate(oracleDOMScript)
		if err != nil {
			continue
		}
		out = append(out, toStringSlice(result)...)
	}
	return out
}
