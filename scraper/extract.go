package scraper

import (
	"fmt"
	"net/url"

	"github.com/bidwatch/bidwatch/models"
	"github.com/ysmood/gson"
)

// extractCardsJS walks every item anchor that wraps a thumbnail image,
// finds its nearest card-like ancestor, and reads the positional
// columns out of it. It runs inside the page so one round trip yields
// every card currently mounted.
//
// The ancestor hunt matches by loose class-name substring, bounded to
// six hops; when no card-like container exists the anchor itself is the
// container. Left and right columns are collected independently in
// document order — pairing is by index, which is how the site's markup
// works (and misaligns when it doesn't; that fragility is inherited
// deliberately).
const extractCardsJS = `() => {
  const anchors = Array.from(document.querySelectorAll("a[href*='/auction/'][href*='/item/']")).filter(a => a.querySelector('img'));
  const pickText = (el) => (el && el.innerText ? el.innerText.trim() : "");
  const nearestCardRoot = (a) => {
    let el = a;
    for (let i = 0; i < 6; i++) {
      if (!el) break;
      const cls = el.className || "";
      if (typeof cls === "string" && (cls.includes("card") || cls.includes("item") || cls.includes("list") || cls.includes("row") || cls.includes("column") || cls.includes("listview"))) {
        return el;
      }
      el = el.parentElement;
    }
    return a;
  };
  const out = [];
  for (const a of anchors) {
    const href = a.getAttribute('href') || "";
    const img = a.querySelector('img');
    const imgSrc = (img && (img.getAttribute('src') || img.getAttribute('data-src'))) || "";
    const root = nearestCardRoot(a);
    const truncEl = root.querySelector('.trunc-title');
    const title = pickText(truncEl) || pickText(a);
    const lefts = []; root.querySelectorAll('.float-left').forEach(n => lefts.push(pickText(n)));
    const rights = []; root.querySelectorAll('.float-right').forEach(n => rights.push(pickText(n)));
    out.push({
      href: href,
      imgSrc: imgSrc,
      title: title,
      lefts: lefts,
      rights: rights,
      extraInfo: pickText(root.querySelector('.item_extra_info')),
      redInfo: pickText(root.querySelector('.red_small')),
      cardText: pickText(root)
    });
  }
  return out;
}`

// ExtractAll returns the ordered set of raw records currently present
// in the document. Hrefs and image sources are resolved against baseURL;
// identity URLs are additionally fragment-stripped. Anchors whose href
// cannot yield an identity URL are skipped.
func ExtractAll(p Page, baseURL string) ([]models.RawRecord, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}

	res, err := p.Eval(extractCardsJS)
	if err != nil {
		return nil, fmt.Errorf("card extraction script: %w", err)
	}

	cards := res.Arr()
	records := make([]models.RawRecord, 0, len(cards))
	for _, card := range cards {
		identity := identityURL(base, card.Get("href").Str())
		if identity == "" {
			continue
		}
		records = append(records, models.RawRecord{
			IdentityURL: identity,
			ImageURL:    resolveURL(base, card.Get("imgSrc").Str()),
			Title:       card.Get("title").Str(),
			LeftLabels:  stringSlice(card.Get("lefts")),
			RightValues: stringSlice(card.Get("rights")),
			ExtraInfo:   card.Get("extraInfo").Str(),
			RedInfo:     card.Get("redInfo").Str(),
			CardText:    card.Get("cardText").Str(),
		})
	}
	return records, nil
}

// identityURL resolves ref against base and strips any fragment,
// yielding the canonical item key. Returns "" for empty or unparseable
// refs.
func identityURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// resolveURL resolves ref against base without touching fragments.
func resolveURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func stringSlice(j gson.JSON) []string {
	arr := j.Arr()
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = v.Str()
	}
	return out
}
