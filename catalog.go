package portraitgen

import "strings"

// Option is one selectable entry of a catalog: a prompt concept, an aspect ratio or a quality level.
type Option struct {
	ID    string
	Label string
	Value string
}

// CustomOptionID identifies the ad-hoc option built from free text.
const CustomOptionID = "custom"

// CustomOption wraps user-written prompt text as an Option.
func CustomOption(text string) Option {
	return Option{
		ID:    CustomOptionID,
		Label: "Custom Prompt",
		Value: strings.TrimSpace(text),
	}
}

// ConceptTab selects which concept catalog is shown.
type ConceptTab string

const (
	ConceptTabKids   ConceptTab = "kids"
	ConceptTabAdults ConceptTab = "adults"
)

var KidPromptOptions = []Option{
	{
		ID:    "kid-lantern-parade",
		Label: "Lantern Parade",
		Value: "Transform the child in this photo into a joyful Mid-Autumn Festival portrait. Keep the child's face, features and identity exactly the same. Dress the child in a bright traditional ao dai, holding a glowing star-shaped lantern, walking in a lantern parade at night with warm golden lights and a full moon in the sky.",
	},
	{
		ID:    "kid-moon-rabbit",
		Label: "Moon Rabbit Friend",
		Value: "Transform the child in this photo into a magical Mid-Autumn Festival scene. Keep the child's face, features and identity exactly the same. The child sits on a soft cloud next to a friendly white moon rabbit, surrounded by floating paper lanterns, with a huge glowing full moon behind them. Soft, dreamy, storybook lighting.",
	},
	{
		ID:    "kid-mooncake-feast",
		Label: "Mooncake Feast",
		Value: "Transform the child in this photo into a cheerful Mid-Autumn Festival portrait. Keep the child's face, features and identity exactly the same. The child wears festive red and gold clothes and sits at a wooden table covered with mooncakes, pomelo and tea, in a cozy courtyard decorated with lanterns under the full moon.",
	},
	{
		ID:    "kid-lion-dance",
		Label: "Lion Dance",
		Value: "Transform the child in this photo into an energetic Mid-Autumn Festival portrait. Keep the child's face, features and identity exactly the same. The child holds a small lion dance head costume and drum, with a colorful lion dance performance and drifting confetti in the background at night.",
	},
}

var AdultPromptOptions = []Option{
	{
		ID:    "adult-moon-goddess",
		Label: "Moon Goddess",
		Value: "Transform the person in this photo into an elegant Moon Goddess portrait for the Mid-Autumn Festival. Keep the person's face, features and identity exactly the same. Flowing white and silver silk robes, delicate hair ornaments, standing on a palace terrace with a giant luminous full moon, soft mist and floating lanterns. Cinematic, ethereal lighting.",
	},
	{
		ID:    "adult-ao-dai-lanterns",
		Label: "Ao Dai & Lanterns",
		Value: "Transform the person in this photo into a graceful Mid-Autumn Festival portrait. Keep the person's face, features and identity exactly the same. The person wears a silk ao dai and holds a traditional paper lantern, standing on an old town street lined with glowing lanterns at dusk. Warm, film-like color grading.",
	},
	{
		ID:    "adult-tea-moonlight",
		Label: "Tea Under Moonlight",
		Value: "Transform the person in this photo into a serene Mid-Autumn Festival portrait. Keep the person's face, features and identity exactly the same. The person sits beside a lotus pond pouring tea, with mooncakes on a lacquered tray and the full moon reflected in the water. Calm, elegant, soft evening light.",
	},
	{
		ID:    "adult-family-reunion",
		Label: "Festival Reunion",
		Value: "Transform the person in this photo into a warm Mid-Autumn Festival reunion portrait. Keep the person's face, features and identity exactly the same. The person is dressed in festive traditional clothing in a courtyard decorated with red lanterns and fairy lights, under a bright full moon. Natural, joyful expression and cozy atmosphere.",
	},
}

var AspectRatioOptions = []Option{
	{ID: "ar-1-1", Label: "Square (1:1)", Value: string(AspectRatio1x1)},
	{ID: "ar-3-4", Label: "Portrait (3:4)", Value: string(AspectRatio3x4)},
	{ID: "ar-9-16", Label: "Story (9:16)", Value: string(AspectRatio9x16)},
}

var QualityOptions = []Option{
	{ID: "q-high", Label: "High", Value: "High"},
	{ID: "q-ultra", Label: "Ultra HD 4K", Value: "Ultra HD 4K, extremely detailed, sharp focus"},
	{ID: "q-standard", Label: "Standard", Value: "Standard"},
}

// ConceptOptions returns the concept catalog for a tab. Unknown tabs get the kids catalog.
func ConceptOptions(tab ConceptTab) []Option {
	if tab == ConceptTabAdults {
		return AdultPromptOptions
	}
	return KidPromptOptions
}

// FindOption looks up an option by ID.
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
