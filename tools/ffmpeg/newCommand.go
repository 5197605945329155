package ffmpeg

import (
	"fmt"
)

// Command is the argument list template for one ffmpeg invocation shape
type Command struct {
	command []string
}

// Args is the argument to replace ffmpeg command list
type Args struct {
	Index int
	Value string
}

// ReplaceArguments - replaces the given arguments with default arguments in the given index
func (f *Command) ReplaceArguments(args []Args) []string {

	for _, arg := range args {
		f.command[arg.Index] = arg.Value
	}

	return f.command
}

var sequenceToVideo = Command{
	command: []string{
		"-y",             // 0
		"-framerate",     // 1
		"30",             // 2
		"-start_number",  // 3
		"0",              // 4
		"-i",             // 5
		"frame_%04d.png", // 6
		"-c:v",           // 7
		"libx264",        // 8
		"-pix_fmt",       // 9
		"yuv420p",        // 10
		"-crf",           // 11
		"23",             // 12
		"output.mp4",     // 13
	},
}

var compositeSideBySide = Command{
	command: []string{
		"-y",              // 0
		"-i",              // 1
		"left.mp4",        // 2
		"-i",              // 3
		"right.mp4",       // 4
		"-filter_complex", // 5
		"filter",          // 6
		"-c:v",            // 7
		"libx264",         // 8
		"-pix_fmt",        // 9
		"yuv420p",         // 10
		"-crf",            // 11
		"23",              // 12
		"combined.mp4",    // 13
	},
}

// makeStackFilter - scales each input to the target height keeping its own
// aspect ratio, then stacks them left to right. Different frame counts are
// left to ffmpeg's default truncate-to-shortest behaviour.
func makeStackFilter(height int) string {
	return fmt.Sprintf(
		"[0:v]scale=-1:%d[left];[1:v]scale=-1:%d[right];[left][right]hstack=inputs=2",
		height, height,
	)
}
