// Command lutdump loads static property tables and prints the shape of the
// hash tables built from them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"runtime/pprof"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hostobj/hostobj"
	"github.com/hostobj/hostobj/lut"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var format = flag.String("format", "auto", "input format: auto, source or yaml")
var verbose = flag.Bool("v", false, "list the entries of every table in slot order")

func readSource(filename string) ([]byte, error) {
	if filename == "" || filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}

func detectFormat(filename string) string {
	if *format != "auto" {
		return *format
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "source"
}

func load(filename string, src []byte) ([]lut.Table, error) {
	b := &lut.Bindings{AllowUnbound: true}
	switch f := detectFormat(filename); f {
	case "yaml":
		return lut.LoadYAML(strings.NewReader(string(src)), b)
	case "source":
		return lut.ParseSource(string(src), b)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

func dump(p *message.Printer, c *hostobj.ClassInfo) {
	t := c.StaticTable()
	if t == nil {
		p.Printf("%s: no static properties\n", c.Name)
		return
	}
	st := t.Stats()
	p.Printf("%s: %d entries, %d buckets (%d used), %d collisions, longest chain %d, compact size %d\n",
		c.Name, st.Entries, st.Buckets, st.UsedBuckets, st.Collisions, st.MaxChain, t.CompactSize())
	if !*verbose {
		return
	}
	for _, e := range t.Entries() {
		p.Printf("  %-24s %s\n", e.Key().String(), e.Attributes())
	}
}

func run() error {
	filename := flag.Arg(0)
	src, err := readSource(filename)
	if err != nil {
		return err
	}

	tables, err := load(filename, src)
	if err != nil {
		return err
	}
	classes, err := lut.Classes(tables)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	for _, c := range classes {
		dump(p, c)
	}
	return nil
}

// profile runs f, writing a CPU profile to -cpuprofile if it is set. The
// profile is complete by the time profile returns.
func profile(f func() error) error {
	if *cpuprofile == "" {
		return f()
	}
	out, err := os.Create(*cpuprofile)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := pprof.StartCPUProfile(out); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()
	return f()
}

func main() {
	defer func() {
		if x := recover(); x != nil {
			debug.PrintStack()
			panic(x)
		}
	}()
	flag.Parse()
	if err := profile(run); err != nil {
		log.Println(err)
		os.Exit(64)
	}
}
