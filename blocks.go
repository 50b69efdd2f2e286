package qrbyte

import (
	"fmt"

	"github.com/RashadAnsari/qrbyte/internal/bitset"
	"github.com/RashadAnsari/qrbyte/internal/reedsolomon"
)

type dataBlock struct {
	data []byte
	ec   []byte
}

// splitBlocks divides the data codewords into group 1 blocks followed by
// group 2 blocks.
func splitBlocks(data *bitset.Bitset, v qrCodeVersion) ([]dataBlock, error) {
	codewords, err := data.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	if len(codewords) != v.blocks.DataCodewords() {
		return nil, fmt.Errorf("%w: %d data codewords, version %d-%s needs %d",
			ErrShapeMismatch, len(codewords), v.version, v.level, v.blocks.DataCodewords())
	}

	blocks := make([]dataBlock, 0, v.numBlocks())

	groups := [2]struct{ numBlocks, numCodewords int }{
		{v.blocks.Group1Blocks, v.blocks.Group1Codewords},
		{v.blocks.Group2Blocks, v.blocks.Group2Codewords},
	}

	start := 0

	for _, g := range groups {
		for j := 0; j < g.numBlocks; j++ {
			end := start + g.numCodewords
			blocks = append(blocks, dataBlock{data: codewords[start:end:end]})
			start = end
		}
	}

	return blocks, nil
}

// encodeBlocks computes the error correction codewords of every block and
// returns the interleaved codeword stream followed by the remainder bits.
// numModules is the number of data modules in the symbol; the stream
// must fill them exactly.
func encodeBlocks(data *bitset.Bitset, v qrCodeVersion, numModules int) (*bitset.Bitset, error) {
	blocks, err := splitBlocks(data, v)
	if err != nil {
		return nil, err
	}

	numECBytes := v.blocks.ECCodewordsPerBlock

	generator, err := reedsolomon.GeneratorPolynomial(numECBytes)
	if err != nil {
		return nil, err
	}

	for i := range blocks {
		ec, err := reedsolomon.Divide(blocks[i].data, generator)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		if len(ec) != numECBytes {
			return nil, fmt.Errorf("%w: block %d has %d error correction codewords, want %d",
				ErrInvariantViolation, i, len(ec), numECBytes)
		}

		blocks[i].ec = ec
	}

	result := bitset.New()
	result.AppendBytes(interleave(blocks, func(b dataBlock) []byte { return b.data }))
	result.AppendBytes(interleave(blocks, func(b dataBlock) []byte { return b.ec }))

	if err := addRemainderBits(result, v, numModules); err != nil {
		return nil, err
	}

	return result, nil
}

// interleave takes codeword i of every block in turn, skipping blocks
// that are already exhausted.
func interleave(blocks []dataBlock, part func(dataBlock) []byte) []byte {
	var result []byte

	for i, working := 0, true; working; i++ {
		working = false

		for _, b := range blocks {
			p := part(b)
			if i >= len(p) {
				continue
			}

			result = append(result, p[i])
			working = true
		}
	}

	return result
}

func addRemainderBits(encoded *bitset.Bitset, v qrCodeVersion, numModules int) error {
	encoded.AppendNumBools(v.numRemainderBits, false)

	if encoded.Len() != numModules {
		return fmt.Errorf("%w: %d bits for %d data modules (version %d)",
			ErrShapeMismatch, encoded.Len(), numModules, v.version)
	}

	return nil
}
