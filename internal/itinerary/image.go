package itinerary

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const unsplash = "https://images.unsplash.com/"

// DefaultImages is the fallback set used when no destination matches a keyword.
var DefaultImages = []string{
	unsplash + "photo-1488085061387-422e29b40080?auto=format&fit=crop&w=2874&q=80",
	unsplash + "photo-1526772662000-3f88f10405ff?auto=format&fit=crop&w=2874&q=80",
	unsplash + "photo-1473951574080-01fe45ec8643?auto=format&fit=crop&w=2832&q=80",
}

type keywordImage struct {
	keyword string
	url     string
}

// keywordImages is checked in order; the first keyword contained in a
// destination name wins, so specific cities precede the generic words.
var keywordImages = []keywordImage{
	{"new york", unsplash + "photo-1496442226666-8d4d0e62e6e9?auto=format&fit=crop&w=2940&q=80"},
	{"paris", unsplash + "photo-1502602898657-3e91760cbb34?auto=format&fit=crop&w=2173&q=80"},
	{"tokyo", unsplash + "photo-1536098561742-ca998e48cbcc?auto=format&fit=crop&w=2736&q=80"},
	{"london", unsplash + "photo-1533929736458-ca588d08c8be?auto=format&fit=crop&w=2940&q=80"},
	{"rome", unsplash + "photo-1552832230-c0197dd311b5?auto=format&fit=crop&w=2592&q=80"},
	{"sydney", unsplash + "photo-1506973035872-a4ec16b8e8d9?auto=format&fit=crop&w=2850&q=80"},
	{"bangkok", unsplash + "photo-1508009603885-9002a61a57e2?auto=format&fit=crop&w=2940&q=80"},
	{"dubai", unsplash + "photo-1512453979798-5ea266f8880c?auto=format&fit=crop&w=2940&q=80"},
	{"cairo", unsplash + "photo-1572252009286-268acec5ca0a?auto=format&fit=crop&w=2940&q=80"},
	{"rio", unsplash + "photo-1483729558449-99ef09a8c325?auto=format&fit=crop&w=2940&q=80"},
	{"amsterdam", unsplash + "photo-1512470876302-972faa2aa9a4?auto=format&fit=crop&w=2940&q=80"},
	{"barcelona", unsplash + "photo-1523531294919-4bcd7c65e216?auto=format&fit=crop&w=2940&q=80"},
	{"city", unsplash + "photo-1477959858617-67f85cf4f1df?auto=format&fit=crop&w=2944&q=80"},
	{"beach", unsplash + "photo-1507525428034-b723cf961d3e?auto=format&fit=crop&w=2946&q=80"},
	{"mountain", unsplash + "photo-1519681393784-d120267933ba?auto=format&fit=crop&w=2940&q=80"},
}

// ImagePicker chooses a representative picture for a trip.
// The fallback pick is random; pass a seeded source to make it repeatable.
// A picker is safe for concurrent use.
type ImagePicker struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewImagePicker returns a picker drawing fallbacks from src.
// A nil src uses the runtime's global random source.
func NewImagePicker(src rand.Source) *ImagePicker {
	if src == nil {
		return &ImagePicker{}
	}
	return &ImagePicker{rng: rand.New(src)}
}

// Pick walks destinations in itinerary order and returns the image of the
// first keyword found in a destination name. With no match, or no
// destinations, it returns one of DefaultImages chosen uniformly at random.
func (p *ImagePicker) Pick(dests []domain.Destination) string {
	for _, d := range dests {
		name := strings.ToLower(d.Name)
		for _, k := range keywordImages {
			if strings.Contains(name, k.keyword) {
				return k.url
			}
		}
	}
	return DefaultImages[p.intN(len(DefaultImages))]
}

func (p *ImagePicker) intN(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
