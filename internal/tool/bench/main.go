//go:build ignore
// +build ignore

// Benchmark tool to measure block/bit error rates and throughput of the
// polar decoders over a simulated BPSK/AWGN channel. Each (list size, Eb/N0)
// pair runs a fixed number of trial frames through encode, channel, and
// decode, and reports one CSV row.
//
// Example usage:
//	$ go build -o polarbench main.go
//	$ ./polarbench -n 1024 -k 512 -snr 5 -ebn0 1,2,3,4 -lists 1,2,8 -trials 1000
//
//	L,Eb/N0,BLER,BER,Runs,Errors,Time,Blockspeed,CodedBitrate,PayloadBitrate,EffectivePayloadBitrate
//	1,1.00,2.340000e-01,3.114062e-02,1000,234,1.791s,558.3,571664.2,285832.1,218947.4
//	...
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/david13pod/antPolarCodes/construct"
	"github.com/david13pod/antPolarCodes/decoding"
	"github.com/david13pod/antPolarCodes/encoding"
)

var (
	blockLength = flag.Int("n", 1024, "block length (power of two)")
	infoLength  = flag.Int("k", 512, "information length")
	designSNR   = flag.Float64("snr", 5, "design SNR in dB for code construction")
	ebn0List    = flag.String("ebn0", "1,2,3,4", "comma-separated Eb/N0 points in dB")
	listSizes   = flag.String("lists", "1,8", "comma-separated SCL list sizes (1 means Fast-SSC)")
	trials      = flag.Int("trials", 1000, "frames per (list, Eb/N0) point")
	seed        = flag.Int64("seed", 0, "PRNG seed")
)

func main() {
	flag.Parse()
	n, k := *blockLength, *infoLength

	frozen, err := construct.Frozen(n, k, *designSNR)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("L,Eb/N0,BLER,BER,Runs,Errors,Time,Blockspeed,CodedBitrate,PayloadBitrate,EffectivePayloadBitrate")
	for _, l := range parseInts(*listSizes) {
		for _, ebn0 := range parseFloats(*ebn0List) {
			runPoint(n, k, frozen, enc, l, ebn0)
		}
	}
}

func runPoint(n, k int, frozen []int, enc *encoding.Encoder, listSize int, ebn0 float64) {
	rate := float64(k) / float64(n)
	sigma := math.Sqrt(1 / (2 * rate * math.Pow(10, ebn0/10)))

	fast := decoding.NewFastSSC(n, frozen, decoding.Float64Arith{}, false)
	scl := decoding.NewSCL(n, frozen, decoding.Float64Arith{}, listSize, false)
	frozenSet := make(map[int]bool, len(frozen))
	for _, f := range frozen {
		frozenSet[f] = true
	}

	rng := rand.New(rand.NewSource(*seed))
	info := make([]byte, k)
	signal := make([]float64, n)
	blockErrors, bitErrors := 0, 0

	start := time.Now()
	for run := 0; run < *trials; run++ {
		for i := range info {
			info[i] = byte(rng.Intn(2))
		}
		codeword, err := enc.Encode(info)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i, b := range codeword {
			tx := 1.0
			if b != 0 {
				tx = -1.0
			}
			rx := tx + rng.NormFloat64()*sigma
			signal[i] = 2 * rx / (sigma * sigma)
		}

		var decoded []byte
		if listSize > 1 {
			decoded = scl.Decode(signal)
		} else {
			fast.SetSignal(signal)
			var err error
			if decoded, err = fast.Decode(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		wrong := 0
		u := encoding.Transform(decoded)
		idx := 0
		for i := 0; i < n; i++ {
			if frozenSet[i] {
				continue
			}
			if u[i] != info[idx] {
				wrong++
			}
			idx++
		}
		bitErrors += wrong
		if wrong > 0 {
			blockErrors++
		}
	}
	elapsed := time.Since(start)

	runs := *trials
	secs := elapsed.Seconds()
	blockspeed := float64(runs) / secs
	codedBitrate := blockspeed * float64(n)
	payloadBitrate := blockspeed * float64(k)
	effective := payloadBitrate * (1 - float64(blockErrors)/float64(runs))
	fmt.Printf("%d,%.2f,%e,%e,%d,%d,%v,%.1f,%.1f,%.1f,%.1f\n",
		listSize, ebn0,
		float64(blockErrors)/float64(runs),
		float64(bitErrors)/float64(runs*len(info)),
		runs, blockErrors, elapsed.Round(time.Millisecond),
		blockspeed, codedBitrate, payloadBitrate, effective)
}

func parseInts(s string) []int {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out = append(out, v)
	}
	return out
}

func parseFloats(s string) []float64 {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out = append(out, v)
	}
	return out
}
