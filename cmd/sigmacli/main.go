package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"SIS-Sigma/prof"
	"SIS-Sigma/protocol"
	"SIS-Sigma/sampling"
)

func usage() {
	fmt.Println(`usage: sigmacli <params|demo|bench> [options]

Subcommands:
  params   Print the built-in parameter presets and their proof sizes.

  demo     Run interactive proof rounds on one session and report the verdicts.
           Flags:
             -preset <default|high_security>  parameter preset (default: default)
             -rounds <int>                    rounds to run (default: 10)
             -seed   <hex>                    master seed for reproducible runs

  bench    Run timed rounds and emit a JSON report for benchplot.
           Flags:
             -preset, -seed                   as for demo
             -rounds <int>                    rounds to run (default: 50)
             -out    <path>                   report path (default: sigma_bench.json)`)
}

// Report is the JSON document consumed by cmd/benchplot.
type Report struct {
	Preset    string             `json:"preset"`
	N         int                `json:"n"`
	M         int                `json:"m"`
	QBits     int                `json:"q_bits"`
	Rounds    int                `json:"rounds"`
	Accepted  int                `json:"accepted"`
	Timings   []prof.Summary     `json:"timings"`
	ProofSize protocol.ProofSize `json:"proof_size"`
}

func presetParams(name string) (protocol.Params, error) {
	switch name {
	case "default":
		return protocol.Default()
	case "high_security":
		return protocol.HighSecurity()
	default:
		return protocol.Params{}, fmt.Errorf("unknown preset %q (want default or high_security)", name)
	}
}

func newSession(p protocol.Params, seedHex string) (*protocol.Session, *sampling.Source, error) {
	if seedHex == "" {
		src, err := sampling.NewSource()
		if err != nil {
			return nil, nil, err
		}
		sn, err := protocol.NewSession(p, src)
		if err != nil {
			return nil, nil, err
		}
		chal, err := sampling.NewSource()
		if err != nil {
			return nil, nil, err
		}
		return sn, chal, nil
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, nil, fmt.Errorf("bad -seed: %w", err)
	}
	sn, err := protocol.NewSeededSession(p, seed)
	if err != nil {
		return nil, nil, err
	}
	chal, err := sampling.NewKeyedSource(sampling.DeriveSeed(seed, "challenge"))
	if err != nil {
		return nil, nil, err
	}
	return sn, chal, nil
}

// runRounds executes the three moves round by round with timing hooks and
// returns the number of accepted transcripts.
func runRounds(sn *protocol.Session, chal *sampling.Source, rounds int) (int, error) {
	accepted := 0
	m := sn.Params().M
	for i := 0; i < rounds; i++ {
		start := time.Now()
		u, err := sn.Commit()
		if err != nil {
			return accepted, fmt.Errorf("round %d commit: %w", i, err)
		}
		prof.Track(start, "commit")

		c, err := protocol.GenerateChallenge(chal, m)
		if err != nil {
			return accepted, fmt.Errorf("round %d challenge: %w", i, err)
		}

		start = time.Now()
		z, err := sn.Respond(c)
		if err != nil {
			return accepted, fmt.Errorf("round %d respond: %w", i, err)
		}
		prof.Track(start, "respond")

		start = time.Now()
		ok, err := sn.Verify(u, c, z)
		if err != nil {
			return accepted, fmt.Errorf("round %d verify: %w", i, err)
		}
		prof.Track(start, "verify")
		if ok {
			accepted++
		}
	}
	return accepted, nil
}

func buildReport(preset string, p protocol.Params, rounds, accepted int) (Report, error) {
	ps, err := protocol.CalculateProofSize(p)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Preset:    preset,
		N:         p.N,
		M:         p.M,
		QBits:     p.Q.BitLen(),
		Rounds:    rounds,
		Accepted:  accepted,
		Timings:   prof.Summarize(prof.SnapshotAndReset()),
		ProofSize: ps,
	}, nil
}

func printReport(r Report) {
	fmt.Printf("preset %s: %d/%d rounds accepted\n", r.Preset, r.Accepted, r.Rounds)
	for _, s := range r.Timings {
		fmt.Printf("  %-8s n=%-5d mean=%9.1fus median=%9.1fus p95=%9.1fus\n",
			s.Label, s.Count, s.MeanUS, s.MedianUS, s.P95US)
	}
	fmt.Printf("  proof size: %s\n", r.ProofSize)
}

func cmdParams() error {
	for _, name := range []string{"default", "high_security"} {
		p, err := presetParams(name)
		if err != nil {
			return err
		}
		fmt.Printf("[%s]\n%s", name, p)
		ps, err := protocol.CalculateProofSize(p)
		if err != nil {
			return err
		}
		fmt.Printf("  proof size: %s\n\n", ps)
	}
	return nil
}

func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	preset := fs.String("preset", "default", "parameter preset")
	rounds := fs.Int("rounds", 10, "rounds to run")
	seed := fs.String("seed", "", "hex master seed")
	fs.Parse(args)

	p, err := presetParams(*preset)
	if err != nil {
		return err
	}
	fmt.Print(p)
	sn, chal, err := newSession(p, *seed)
	if err != nil {
		return err
	}
	defer sn.Close()
	accepted, err := runRounds(sn, chal, *rounds)
	if err != nil {
		return err
	}
	report, err := buildReport(*preset, p, *rounds, accepted)
	if err != nil {
		return err
	}
	printReport(report)
	if accepted != *rounds {
		return fmt.Errorf("%d honest rounds rejected", *rounds-accepted)
	}
	return nil
}

func cmdBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	preset := fs.String("preset", "default", "parameter preset")
	rounds := fs.Int("rounds", 50, "rounds to run")
	seed := fs.String("seed", "", "hex master seed")
	out := fs.String("out", "sigma_bench.json", "report output path")
	fs.Parse(args)

	p, err := presetParams(*preset)
	if err != nil {
		return err
	}
	sn, chal, err := newSession(p, *seed)
	if err != nil {
		return err
	}
	defer sn.Close()
	accepted, err := runRounds(sn, chal, *rounds)
	if err != nil {
		return err
	}
	report, err := buildReport(*preset, p, *rounds, accepted)
	if err != nil {
		return err
	}
	printReport(report)
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		return err
	}
	fmt.Println("Report:", *out)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "params":
		err = cmdParams()
	case "demo":
		err = cmdDemo(os.Args[2:])
	case "bench":
		err = cmdBench(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
