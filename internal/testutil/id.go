package testutil

// FixedIDGenerator generates the same engine ID every time.
//
// Engines built with it log and trace under a known ID, so scenario runs
// produce byte-identical golden snapshots.
//
// Implements engine.IDGenerator.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// DefaultEngineID is used when NewFixedIDGenerator is given an empty ID.
const DefaultEngineID = "test-engine-default"

// NewFixedIDGenerator creates a new fixed engine ID generator.
//
// The ID is typically set in the scenario YAML:
//
//	engine_id: "test-engine-001"
//
// If id is empty, Generate() returns DefaultEngineID.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultEngineID
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed engine ID.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
