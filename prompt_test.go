package portraitgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompose_KidThemeScenario(t *testing.T) {
	base := KidPromptOptions[0].Value

	got := Compose(PromptInput{
		Base:        base,
		AspectRatio: AspectRatio1x1,
		Quality:     "High",
	})

	want := base + "\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a square with a 1:1 aspect ratio.\n- The image quality must be: High."
	assert.Equal(t, want, got)
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		in   PromptInput
		want string
	}{
		{
			name: "pose modifier is appended and trimmed",
			in:   PromptInput{Base: "Lantern walk.", Pose: "  smiling, head tilted  ", AspectRatio: AspectRatio3x4, Quality: "Standard"},
			want: "Lantern walk.\n\nAdditionally, apply this modification to the pose or action: smiling, head tilted.\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a vertical portrait with a 3:4 aspect ratio.\n- The image quality must be: Standard.",
		},
		{
			name: "blank pose is ignored",
			in:   PromptInput{Base: "Lantern walk.", Pose: " \n\t", AspectRatio: AspectRatio9x16, Quality: "High"},
			want: "Lantern walk.\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a tall, vertical portrait with a 9:16 aspect ratio.\n- The image quality must be: High.",
		},
		{
			name: "custom prompt replaces base and drops pose",
			in:   PromptInput{Base: "Lantern walk.", Pose: "waving", Custom: "  Me as an astronaut  ", AspectRatio: AspectRatio1x1, Quality: "High"},
			want: "Me as an astronaut\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a square with a 1:1 aspect ratio.\n- The image quality must be: High.",
		},
		{
			name: "blank custom prompt falls back to base",
			in:   PromptInput{Base: "Lantern walk.", Custom: "   ", AspectRatio: AspectRatio1x1, Quality: "High"},
			want: "Lantern walk.\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a square with a 1:1 aspect ratio.\n- The image quality must be: High.",
		},
		{
			name: "unknown aspect ratio uses the square directive",
			in:   PromptInput{Base: "Lantern walk.", AspectRatio: "16:9", Quality: "High"},
			want: "Lantern walk.\n\nIMPORTANT INSTRUCTIONS:\n- The final image must be a square with a 1:1 aspect ratio.\n- The image quality must be: High.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.in))
		})
	}
}

func nonBlank(t *rapid.T, label string) string {
	return rapid.StringMatching(`[A-Za-z][A-Za-z ,.]{0,40}`).Draw(t, label)
}

func TestCompose_PoseProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.String().Draw(rt, "base")
		pose := nonBlank(rt, "pose")

		got := Compose(PromptInput{Base: base, Pose: pose, AspectRatio: AspectRatio1x1, Quality: "High"})

		require.True(rt, strings.HasPrefix(got, base))
		clause := posePrefix + strings.TrimSpace(pose) + "."
		clauseAt := strings.Index(got[len(base):], clause)
		require.Equal(rt, 0, clauseAt, "modifier clause must follow the base directly")

		instructionsAt := strings.LastIndex(got, instructionsHeader)
		require.Greater(rt, instructionsAt, len(base)+len(clause)-1)
	})
}

func TestCompose_CustomIndependentOfBaseAndPose(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		custom := nonBlank(rt, "custom")
		ar := AspectRatio(rapid.SampledFrom([]string{"1:1", "3:4", "9:16", "4:3", ""}).Draw(rt, "aspect"))
		quality := rapid.String().Draw(rt, "quality")

		a := Compose(PromptInput{
			Base:        rapid.String().Draw(rt, "baseA"),
			Pose:        rapid.String().Draw(rt, "poseA"),
			Custom:      custom,
			AspectRatio: ar,
			Quality:     quality,
		})
		b := Compose(PromptInput{
			Base:        rapid.String().Draw(rt, "baseB"),
			Pose:        rapid.String().Draw(rt, "poseB"),
			Custom:      custom,
			AspectRatio: ar,
			Quality:     quality,
		})

		require.Equal(rt, a, b)
		require.True(rt, strings.HasPrefix(a, strings.TrimSpace(custom)))
	})
}

func TestAspectRatioInstruction_DefaultCase(t *testing.T) {
	square := AspectRatioInstruction(AspectRatio1x1)

	rapid.Check(t, func(rt *rapid.T) {
		ar := AspectRatio(rapid.String().Filter(func(s string) bool {
			return s != "1:1" && s != "3:4" && s != "9:16"
		}).Draw(rt, "aspect"))

		require.Equal(rt, square, AspectRatioInstruction(ar))
	})
}

func TestCompose_Deterministic(t *testing.T) {
	in := PromptInput{Base: AdultPromptOptions[0].Value, Pose: "looking up", AspectRatio: AspectRatio9x16, Quality: QualityOptions[1].Value}
	assert.Equal(t, Compose(in), Compose(in))
}
