package analytics

import (
	"math"
	"sort"
	"strconv"
)

// topSettings caps how many entries each settings list carries.
const topSettings = 10

// GearEntry is one camera body or lens with its share of the total.
type GearEntry struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SettingEntry is one exposure-setting value and its frequency.
type SettingEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ISOEntry is one ISO value and its frequency.
type ISOEntry struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// Settings holds the top-10 most used exposure settings.
type Settings struct {
	Apertures     []SettingEntry `json:"apertures"`
	ShutterSpeeds []SettingEntry `json:"shutterSpeeds"`
	ISOValues     []ISOEntry     `json:"isoValues"`
	FocalLengths  []SettingEntry `json:"focalLengths"`
}

// GearStats ranks camera bodies, lenses, and exposure settings by how
// often they appear in the photo set.
type GearStats struct {
	Cameras          []GearEntry `json:"cameras"`
	Lenses           []GearEntry `json:"lenses"`
	MostUsedSettings Settings    `json:"mostUsedSettings"`
}

// tally counts values while remembering first-occurrence order, so
// equal counts rank stably by when a value was first seen.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(value string) {
	if _, seen := t.counts[value]; !seen {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

func (t *tally) total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// ranked returns the values sorted by count descending, first
// occurrence breaking ties.
func (t *tally) ranked() []string {
	values := make([]string, len(t.order))
	copy(values, t.order)
	sort.SliceStable(values, func(i, j int) bool {
		return t.counts[values[i]] > t.counts[values[j]]
	})
	return values
}

// RankGear builds the gear and settings frequency rankings. Only
// photographic records contribute; absent fields are never counted, so
// no entry ever has a zero count. Camera and lens lists carry
// percentages computed over the full frequency map; settings lists are
// truncated to the top ten.
func RankGear(photos []EnrichedPhoto) GearStats {
	cameras := newTally()
	lenses := newTally()
	apertures := newTally()
	shutterSpeeds := newTally()
	isoValues := newTally()
	focalLengths := newTally()

	for _, p := range photos {
		if !p.Photographic() {
			continue
		}
		meta := p.Meta

		if camera, ok := meta.Camera(); ok {
			cameras.add(camera)
		}
		if meta.LensModel != nil {
			lenses.add(*meta.LensModel)
		}
		if meta.Aperture != nil {
			apertures.add(*meta.Aperture)
		}
		if meta.ShutterSpeed != nil {
			shutterSpeeds.add(*meta.ShutterSpeed)
		}
		if meta.ISO != nil {
			isoValues.add(strconv.Itoa(*meta.ISO))
		}
		if meta.FocalLength != nil {
			focalLengths.add(*meta.FocalLength)
		}
	}

	return GearStats{
		Cameras: gearEntries(cameras),
		Lenses:  gearEntries(lenses),
		MostUsedSettings: Settings{
			Apertures:     settingEntries(apertures),
			ShutterSpeeds: settingEntries(shutterSpeeds),
			ISOValues:     isoEntries(isoValues),
			FocalLengths:  settingEntries(focalLengths),
		},
	}
}

// gearEntries renders a full ranking with percentages. Percentages are
// rounded per entry and sum to 100 within rounding tolerance.
func gearEntries(t *tally) []GearEntry {
	total := t.total()
	entries := make([]GearEntry, 0, len(t.order))
	for _, name := range t.ranked() {
		count := t.counts[name]
		entries = append(entries, GearEntry{
			Name:       name,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}
	return entries
}

// settingEntries renders the top slice of a settings ranking.
func settingEntries(t *tally) []SettingEntry {
	ranked := t.ranked()
	if len(ranked) > topSettings {
		ranked = ranked[:topSettings]
	}
	entries := make([]SettingEntry, 0, len(ranked))
	for _, value := range ranked {
		entries = append(entries, SettingEntry{Value: value, Count: t.counts[value]})
	}
	return entries
}

// isoEntries is settingEntries with integer values restored.
func isoEntries(t *tally) []ISOEntry {
	ranked := t.ranked()
	if len(ranked) > topSettings {
		ranked = ranked[:topSettings]
	}
	entries := make([]ISOEntry, 0, len(ranked))
	for _, value := range ranked {
		iso, _ := strconv.Atoi(value)
		entries = append(entries, ISOEntry{Value: iso, Count: t.counts[value]})
	}
	return entries
}
