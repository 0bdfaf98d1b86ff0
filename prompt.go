package portraitgen

import (
	"strings"
)

// PromptInput carries the user's selections for one composed prompt.
type PromptInput struct {
	// Base is the value of the selected concept option.
	Base string

	// Pose is an optional modification of pose or action. Ignored when Custom is set.
	Pose string

	// Custom is free-form prompt text. When non-blank it replaces Base and Pose.
	Custom string

	AspectRatio AspectRatio
	Quality     string
}

const (
	posePrefix         = "\n\nAdditionally, apply this modification to the pose or action: "
	instructionsHeader = "\n\nIMPORTANT INSTRUCTIONS:\n- "
)

// AspectRatioInstruction returns the directive for an aspect ratio.
// Unrecognized ratios get the square directive.
func AspectRatioInstruction(ar AspectRatio) string {
	switch ar {
	case AspectRatio3x4:
		return "The final image must be a vertical portrait with a 3:4 aspect ratio."
	case AspectRatio9x16:
		return "The final image must be a tall, vertical portrait with a 9:16 aspect ratio."
	default:
		return "The final image must be a square with a 1:1 aspect ratio."
	}
}

// QualityInstruction returns the quality directive.
func QualityInstruction(quality string) string {
	return "The image quality must be: " + quality + "."
}

// Compose builds the final instruction text sent with the source image.
func Compose(in PromptInput) string {
	var b strings.Builder

	if custom := strings.TrimSpace(in.Custom); custom != "" {
		b.WriteString(custom)
	} else {
		b.WriteString(in.Base)
		if pose := strings.TrimSpace(in.Pose); pose != "" {
			b.WriteString(posePrefix)
			b.WriteString(pose)
			b.WriteString(".")
		}
	}

	b.WriteString(instructionsHeader)
	b.WriteString(AspectRatioInstruction(in.AspectRatio))
	b.WriteString("\n- ")
	b.WriteString(QualityInstruction(in.Quality))

	return b.String()
}
