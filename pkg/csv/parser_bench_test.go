package csv_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shapestone/shape-tablecsv/pkg/csv"
)

// Benchmark inputs are generated once and reused across all benchmarks
var (
	smallCSV = generateCSV(10)
	largeCSV = generateCSV(10000)
)

// generateCSV builds rows mixing every scalar kind and the quoting cases.
func generateCSV(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,%d.25,\"name %d, jr\",,\"said \"\"hi\"\"\",\"%d\"\n", i, i, i, i)
	}
	return sb.String()
}

func BenchmarkParse_Small(b *testing.B) {
	b.SetBytes(int64(len(smallCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = csv.Parse(smallCSV)
	}
}

func BenchmarkParse_Large(b *testing.B) {
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = csv.Parse(largeCSV)
	}
}

func BenchmarkSerialize_Large(b *testing.B) {
	table := csv.Parse(largeCSV)
	b.SetBytes(int64(len(largeCSV)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = csv.Serialize(table)
	}
}
