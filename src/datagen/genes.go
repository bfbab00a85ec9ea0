package datagen

var genes = [...]string{
	"M55150", "U32944", "U50136", "X95735", "M92287",
	"X59350", "M28130", "M31211", "D88422", "U46499",
	"X59417", "Y00787", "M84526", "U46751", "HG1322",
	"L47738", "M80254", "D88270", "M62762", "U05259",
	"M84371", "U26266", "M22324", "M69043", "U97105",
	"M63838", "M16038", "M23197", "M89957", "M63138",
	"J05243", "X70070", "X82240", "D43948", "M83667",
	"X15414", "X74570", "U40369", "D83785", "U10323",
}

// DefaultGenes returns a copy of the fixed gene accession list.
func DefaultGenes() []string {
	g := make([]string, len(genes))
	copy(g, genes[:])
	return g
}

// DefaultSampleSizes mirrors the sizes 9, 11 and 13.
func DefaultSampleSizes() []int {
	sizes := make([]int, 0, 3)
	for size := 9; size < 14; size += 2 {
		sizes = append(sizes, size)
	}
	return sizes
}
