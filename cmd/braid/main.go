// Package main provides the braid CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"github.com/braid-ml/braid/bridge"
	"github.com/braid-ml/braid/engine"
	"github.com/braid-ml/braid/ndarray"
)

const version = "v0.1.0-dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--debug" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "braid: %v\n", err)
			os.Exit(1)
		}
		bridge.SetLogger(logger)
		engine.SetLogger(logger)
		args = args[1:]
	}

	if len(args) == 0 {
		usage()
		return
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("braid %s\n", version)
	case "roundtrip":
		err = runRoundtrip()
	case "tokens":
		err = runTokens(strings.Join(args[1:], " "))
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "braid: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("braid - ndarray/tensor bridge")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Usage: braid [--debug] <command>")
	fmt.Println("Commands:")
	fmt.Println("  version          Show version")
	fmt.Println("  roundtrip        Convert sample arrays to tensors and back")
	fmt.Println("  tokens <text>    Tokenize text and push the ids through the bridge")
}

// runRoundtrip demonstrates both conversion directions on a numeric
// and a string array.
func runRoundtrip() error {
	a, err := ndarray.FromSlice([]int32{1, 2, 3, 4, 5, 6}, ndarray.Shape{2, 3})
	if err != nil {
		return err
	}
	defer a.Release()

	h, err := bridge.ArrayToTensor(a)
	if err != nil {
		return err
	}
	fmt.Printf("int32 %v array -> tensor: dims=%v, %d bytes (zero-copy)\n",
		a.Shape(), h.Tensor().Dims(), h.Tensor().ByteSize())

	out, err := bridge.TensorToArray(h)
	if err != nil {
		return err
	}
	fmt.Printf("tensor -> array: shape=%v, values=%v\n", out.Shape(), out.AsInt32())
	out.Release()

	s, err := ndarray.FromStrings([]any{"ab", "", "c"}, ndarray.Shape{3})
	if err != nil {
		return err
	}
	defer s.Release()

	sh, err := bridge.ArrayToTensor(s)
	if err != nil {
		return err
	}
	fmt.Printf("string array -> tensor: %d wire bytes\n", sh.Tensor().ByteSize())

	sout, err := bridge.TensorToArray(sh)
	if err != nil {
		return err
	}
	defer sout.Release()
	for i := 0; i < sout.NumElements(); i++ {
		fmt.Printf("  decoded[%d] = %q\n", i, sout.Elem(i))
	}

	if engine.IsAvailable() {
		fmt.Println("webgpu: device available for tensor staging")
	} else {
		fmt.Println("webgpu: no device available")
	}
	return nil
}

// runTokens encodes text with the cl100k_base tokenizer, pushes the
// token ids through the bridge, and decodes them back.
func runTokens(text string) error {
	if text == "" {
		return fmt.Errorf("tokens: no text given")
	}

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return fmt.Errorf("failed to load tokenizer: %w", err)
	}

	tokens := enc.Encode(text, nil, nil)
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		ids[i] = int64(tok)
	}

	a, err := ndarray.FromSlice(ids, ndarray.Shape{len(ids)})
	if err != nil {
		return err
	}
	defer a.Release()

	h, err := bridge.ArrayToTensor(a)
	if err != nil {
		return err
	}
	fmt.Printf("%d tokens -> tensor: dims=%v, %d bytes\n",
		len(ids), h.Tensor().Dims(), h.Tensor().ByteSize())

	out, err := bridge.TensorToArray(h)
	if err != nil {
		return err
	}
	defer out.Release()

	back := make([]int, out.NumElements())
	for i, id := range out.AsInt64() {
		back[i] = int(id)
	}
	fmt.Printf("round-tripped ids: %v\n", back)
	fmt.Printf("decoded text: %q\n", enc.Decode(back))
	return nil
}
