// Command gateway is a reference collaborator (spec §6): it sits
// between a LoRa radio receiver and a downstream message bus, decoding
// wire packets, dropping repeats from unreliable radio links, and
// republishing each packet's JSON projection, optionally compressed.
//
// It reads framed packets from stdin (one per line, hex-encoded) and
// writes the published payloads to stdout, so it can be wired into a
// real radio stack or exercised from a shell pipeline:
//
//	xxd -p -c0 packets.bin | gateway
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/compress"
	"github.com/matthewgream/iotdata/dedup"
	"github.com/matthewgream/iotdata/internal/options"
	"github.com/matthewgream/iotdata/internal/pool"
	"github.com/matthewgream/iotdata/jsonproj"
)

var errConfigDedupWindow = errors.New("gateway: dedup window must be at least 1")

// Gateway decodes wire packets, filters duplicates, and republishes
// each one's JSON projection through a Codec.
//
// Gateway is not safe for concurrent use: callers needing concurrency
// should run one Gateway per goroutine, each with its own dedup window.
type Gateway struct {
	cfg    *Config
	window *dedup.Window
	codec  compress.Codec
	bufs   *pool.ByteBufferPool
}

// NewGateway builds a Gateway with opts applied over the defaults
// (S2 compression, a 256-entry dedup window, duplicates dropped).
func NewGateway(opts ...Option) (*Gateway, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}

	codec, err := compress.CreateCodec(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}

	return &Gateway{
		cfg:    cfg,
		window: dedup.NewWindow(cfg.DedupWindow),
		codec:  codec,
		bufs:   pool.NewByteBufferPool(pool.PacketBufferDefaultSize, pool.PacketBufferMaxThreshold),
	}, nil
}

// Process decodes one wire packet and returns its compressed JSON
// projection, ready to publish. It returns (nil, nil) when the packet
// is a duplicate the gateway has already published.
func (g *Gateway) Process(packet []byte) ([]byte, error) {
	rec, err := codec.Decode(packet)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if g.cfg.DropDuplicates && g.window.IsDuplicate(rec.Station, rec.Sequence) {
		return nil, nil
	}

	obj, err := jsonproj.ToJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	buf := g.bufs.Get()
	defer g.bufs.Put(buf)

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	buf.MustWrite(raw)

	compressed, err := g.codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	return compressed, nil
}

func main() {
	gw, err := NewGateway()
	if err != nil {
		log.Fatal(err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		packet, err := hex.DecodeString(scanner.Text())
		if err != nil {
			log.Printf("gateway: skipping malformed line: %v", err)
			continue
		}

		published, err := gw.Process(packet)
		if err != nil {
			log.Printf("gateway: dropping packet: %v", err)
			continue
		}
		if published == nil {
			continue
		}

		if _, err := fmt.Fprintln(out, hex.EncodeToString(published)); err != nil {
			log.Fatal(err)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		log.Fatal(err)
	}
}
