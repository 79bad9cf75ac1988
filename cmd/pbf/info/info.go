// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package info implements the pbf CLI's "info" subcommand: it prints the
// decoded Header and, with --extended, scans the whole file to count
// nodes, ways, and relations.
package info

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kvelaren/osmpbf"
	"github.com/kvelaren/osmpbf/cmd/pbf/cli"
	"github.com/kvelaren/osmpbf/model"
)

var out io.Writer = os.Stdout

// extendedHeader is the Header plus the entity counts --extended collects
// by scanning the whole file.
type extendedHeader struct {
	osmpbf.Header

	NodeCount     int64
	WayCount      int64
	RelationCount int64
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire file)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>]",
	Short: "Print information about an OSM file",
	Long:  "Print information about an OSM file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File

		var err error

		if len(args) == 1 {
			f, err = os.Open(args[0])
			if err != nil {
				log.Fatal(err)
			}
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		extended, err := flags.GetBool("extended")
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(in, extended)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info, extended)
		} else {
			renderTxt(info, extended)
		}
	},
}

// runInfo decodes in with osmpbf, always collecting the Header and, when
// extended is true, counting every node, way, and relation along the way.
// The non-extended path stops reading as soon as the Header has arrived,
// since every file carries it as the very first entity.
//
// When extended scans a file whose header carries no bounding box, the
// scan synthesizes one by expanding model.InitialBoundingBox with every
// node's coordinates, so --extended always has a bbox to report even for
// a header that omitted one.
func runInfo(in io.Reader, extended bool) (*extendedHeader, error) {
	info := &extendedHeader{}

	var nc, wc, rc int64

	haveHeader := false
	bbox := model.InitialBoundingBox()
	sawNode := false

	dec, err := osmpbf.NewDecoder(func(b osmpbf.Batch) error {
		for _, e := range b.Entities {
			switch v := e.(type) {
			case osmpbf.Header:
				info.Header = v
				haveHeader = true
			case osmpbf.Node:
				nc++

				if extended && info.BoundingBox == nil {
					sawNode = true
					bbox.ExpandWithLatLng(v.Lat, v.Lon)
				}
			case osmpbf.Way:
				wc++
			case osmpbf.Relation:
				rc++
			}
		}

		return nil
	}, osmpbf.WithTags(false), osmpbf.WithInfo(false))
	if err != nil {
		return nil, err
	}

	r := bufio.NewReaderSize(in, 64*1024)
	buf := make([]byte, 64*1024)

	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if err := dec.Push(buf[:n]); err != nil {
				return nil, err
			}
		}

		if !extended && haveHeader {
			break
		}

		if rerr == io.EOF {
			if err := dec.Finish(); err != nil {
				return nil, err
			}

			break
		}

		if rerr != nil {
			return nil, rerr
		}
	}

	if extended {
		info.NodeCount = nc
		info.WayCount = wc
		info.RelationCount = rc

		if info.BoundingBox == nil && sawNode {
			info.BoundingBox = bbox
		}
	}

	return info, nil
}

func renderJSON(info *extendedHeader, extended bool) {
	var v any
	if extended {
		v = info
	} else {
		v = info.Header
	}

	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(info *extendedHeader, extended bool) {
	fmt.Fprintf(out, "BoundingBox: %v\n", info.BoundingBox)
	fmt.Fprintf(out, "RequiredFeatures: %s\n", strings.Join(info.RequiredFeatures, ", "))
	fmt.Fprintf(out, "OptionalFeatures: %v\n", strings.Join(info.OptionalFeatures, ", "))
	fmt.Fprintf(out, "WritingProgram: %s\n", info.WritingProgram)
	fmt.Fprintf(out, "Source: %s\n", info.Source)
	fmt.Fprintf(out, "OsmosisReplicationTimestamp: %s\n", info.OsmosisReplicationTimestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "OsmosisReplicationSequenceNumber: %d\n", info.OsmosisReplicationSequenceNumber)
	fmt.Fprintf(out, "OsmosisReplicationBaseURL: %s\n", info.OsmosisReplicationBaseURL)

	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	}
}
