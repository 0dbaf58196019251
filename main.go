// Converts social activity data between canonical activity JSON,
// microformats2 nodes, and annotated HTML on stdin/stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/microformats"
	"github.com/kmorelli/activityloom/loom/render"
	"github.com/kmorelli/activityloom/loom/telemetry"
)

func main() {
	from := flag.String("from", "mf2", "input format: mf2 or activity")
	to := flag.String("to", "activity", "output format: mf2, activity, or html")
	synthesize := flag.Bool("synthesize", true, "generate content for likes and shares")

	flag.Parse()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		telemetry.Error(err, "reading stdin")
		os.Exit(1)
	}

	var obj *activity.Object
	switch *from {
	case "mf2":
		var node microformats.Node
		if err := json.Unmarshal(input, &node); err != nil {
			telemetry.Error(err, "parsing microformats json")
			os.Exit(1)
		}
		obj = microformats.Decode(&node)
	case "activity":
		obj = &activity.Object{}
		if err := json.Unmarshal(input, obj); err != nil {
			telemetry.Error(err, "parsing activity json")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown input format %q\n", *from)
		os.Exit(2)
	}
	if obj == nil {
		telemetry.Warn("input did not decode to anything")
		os.Exit(1)
	}

	switch *to {
	case "activity":
		emitJSON(obj)
	case "mf2":
		emitJSON(microformats.Encode(obj))
	case "html":
		fmt.Println(render.Render(obj, render.Options{SynthesizeContent: *synthesize}))
	default:
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", *to)
		os.Exit(2)
	}
}

func emitJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		telemetry.Error(err, "writing output json")
		os.Exit(1)
	}
}
