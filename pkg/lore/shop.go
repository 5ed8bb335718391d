package lore

import (
	"fmt"
	"sort"
	"strings"
)

// Shop is one trading post from an exchange record. Its locations are not
// declared in the source: they are the union of all locations belonging to
// the settings its exchange covers, as derived from the geography source.
type Shop struct {
	Meta
	world     *World
	exchange  string
	settings  []int
	locations []*Location
	items     []*ShopItem
}

// ShopItem trades one quality against another at fixed prices.
type ShopItem struct {
	id       int
	item     *Quality
	currency *Quality
	buy      int
	sell     int
	raw      Raw
}

func (w *World) newShop(raw Raw, idx int, exchange string, settings []int) *Shop {
	if w.opts.Validate {
		validateFields("shop", raw, w.log)
	}

	s := &Shop{
		Meta:     newMeta(raw, idx),
		world:    w,
		exchange: exchange,
		settings: settings,
	}

	seen := make(map[int]bool)
	for _, setting := range settings {
		for _, loc := range w.settings[setting] {
			if !seen[loc.ID()] {
				seen[loc.ID()] = true
				s.locations = append(s.locations, loc)
			}
		}
	}
	sort.Slice(s.locations, func(i, j int) bool {
		return s.locations[i].ID() < s.locations[j].ID()
	})

	for _, item := range raw.List("Availabilities") {
		s.items = append(s.items, w.newShopItem(item, s))
	}
	return s
}

func (w *World) newShopItem(raw Raw, shop *Shop) *ShopItem {
	if w.opts.Validate {
		validateFields("shopitem", raw, w.log)
	}

	item := &ShopItem{
		id:   raw.Int("Id"),
		buy:  raw.Int("Cost"),
		sell: raw.Int("SellPrice"),
		raw:  raw,
	}
	item.item = w.resolveQuality(raw.Map("Quality"), shop)
	item.currency = w.resolveQuality(raw.Map("PurchaseQuality"), shop)
	return item
}

// resolveQuality looks a quality stub up in the registry, substituting a
// placeholder built from the stub on a miss.
func (w *World) resolveQuality(stub Raw, owner Entity) *Quality {
	qid := stub.Int("Id")
	if q, ok := w.Qualities.Get(qid); ok {
		return q
	}
	w.log.Warn("quality reference not found", "quality", qid, "owner", owner.ID())
	return placeholderQuality(stub)
}

func (s *Shop) Exchange() string       { return s.exchange }
func (s *Shop) Settings() []int        { return s.settings }
func (s *Shop) Locations() []*Location { return s.locations }
func (s *Shop) Items() []*ShopItem     { return s.items }

func (s *Shop) Pretty() string {
	var b strings.Builder
	b.WriteString(s.prettyHeader())
	if s.exchange != "" {
		fmt.Fprintf(&b, "\tExchange: %s\n", s.exchange)
	}
	if len(s.locations) > 0 {
		names := make([]string, len(s.locations))
		for i, loc := range s.locations {
			names[i] = loc.Name()
		}
		fmt.Fprintf(&b, "\tLocations: %s\n", strings.Join(names, ", "))
	}
	if len(s.items) > 0 {
		fmt.Fprintf(&b, "\tItems: %d\n", len(s.items))
		for _, item := range s.items {
			fmt.Fprintf(&b, "\t\t%s\n", item.Bare())
		}
	}
	return b.String()
}

func (s *Shop) WikiPage() string {
	var b strings.Builder
	b.WriteString(s.Meta.WikiPage())
	for _, loc := range s.locations {
		fmt.Fprintf(&b, "* Found at: [[%s]]\n", wikiName(loc.Name(), loc.ID()))
	}
	for _, item := range s.items {
		fmt.Fprintf(&b, "* %s\n", item.Wiki())
	}
	return b.String()
}

func (i *ShopItem) ID() int            { return i.id }
func (i *ShopItem) Item() *Quality     { return i.item }
func (i *ShopItem) Currency() *Quality { return i.currency }
func (i *ShopItem) BuyPrice() int      { return i.buy }
func (i *ShopItem) SellPrice() int     { return i.sell }
func (i *ShopItem) Dump() Raw          { return i.raw }

func (i *ShopItem) Bare() string {
	return fmt.Sprintf("%s: buy %d, sell %d (%s)",
		i.item.Name(), i.buy, i.sell, i.currency.Name())
}

func (i *ShopItem) Wiki() string {
	return fmt.Sprintf("{{link icon|%s}}: buy %d, sell %d ({{link icon|%s}})",
		i.item.Name(), i.buy, i.sell, i.currency.Name())
}
