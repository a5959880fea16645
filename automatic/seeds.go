package automatic

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds derives n per-game seeds from a master seed. The same
// master always gives the same seeds in the same order.
func GenerateSeeds(master [32]byte, n int) [][32]byte {
	rng := frand.NewCustom(master[:], 1024, 12)
	seeds := make([][32]byte, n)
	for i := range seeds {
		rng.Read(seeds[i][:])
	}
	return seeds
}

// ParseSeed decodes a hex master seed. An empty string means a random one.
func ParseSeed(s string) ([32]byte, error) {
	var seed [32]byte
	if s == "" {
		return frand.Entropy256(), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("bad seed %q: %w", s, err)
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("seed must be %d bytes, got %d", len(seed), len(b))
	}
	copy(seed[:], b)
	return seed, nil
}

// SaveSeeds writes one hex seed per line, so a run can be played again.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString("# per-game solitaire seeds, hex encoded\n"); err != nil {
		return err
	}
	for i, seed := range seeds {
		if _, err := w.WriteString(hex.EncodeToString(seed[:]) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return w.Flush()
}

// LoadSeeds reads seeds written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
