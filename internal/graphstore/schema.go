package graphstore

// NodeConstraints lists one idempotent uniqueness-constraint statement per
// §6.2 node table (14 entities). Composite-key entities (interned by a
// tuple) get a constraint on a computed `_key` property maintained at write
// time by the memorygraph service; id-keyed entities constrain `id`
// directly.
var NodeConstraints = []string{
	`CREATE CONSTRAINT memory_id IF NOT EXISTS FOR (n:Memory) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT concept_name IF NOT EXISTS FOR (n:Concept) REQUIRE n.name IS UNIQUE`,
	`CREATE CONSTRAINT keyword_term IF NOT EXISTS FOR (n:Keyword) REQUIRE n.term IS UNIQUE`,
	`CREATE CONSTRAINT topic_name IF NOT EXISTS FOR (n:Topic) REQUIRE n.name IS UNIQUE`,
	`CREATE CONSTRAINT entity_key IF NOT EXISTS FOR (n:Entity) REQUIRE n._key IS UNIQUE`,
	`CREATE CONSTRAINT source_key IF NOT EXISTS FOR (n:Source) REQUIRE n._key IS UNIQUE`,
	`CREATE CONSTRAINT decision_id IF NOT EXISTS FOR (n:Decision) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT goal_id IF NOT EXISTS FOR (n:Goal) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT question_id IF NOT EXISTS FOR (n:Question) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT context_key IF NOT EXISTS FOR (n:Context) REQUIRE n._key IS UNIQUE`,
	`CREATE CONSTRAINT preference_key IF NOT EXISTS FOR (n:Preference) REQUIRE n._key IS UNIQUE`,
	`CREATE CONSTRAINT temporal_marker_id IF NOT EXISTS FOR (n:TemporalMarker) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT contradiction_id IF NOT EXISTS FOR (n:Contradiction) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT compartment_name IF NOT EXISTS FOR (n:Compartment) REQUIRE n.name IS UNIQUE`,
}

// NodeLabels names the 14 §6.2 node tables, in the same order as
// NodeConstraints. delete_all (spec §3.4) iterates this list to DETACH
// DELETE every node, matching the original implementation's
// delete_all_data().
var NodeLabels = []string{
	"Memory", "Concept", "Keyword", "Topic", "Entity", "Source", "Decision",
	"Goal", "Question", "Context", "Preference", "TemporalMarker",
	"Contradiction", "Compartment",
}

// RelationIndexes lists supporting (non-unique) property indexes. Despite
// the name, both are indexes on Memory node properties (lastAccessed,
// created); no relation-property index is declared.
var RelationIndexes = []string{
	`CREATE INDEX memory_last_accessed IF NOT EXISTS FOR (n:Memory) ON (n.lastAccessed)`,
	`CREATE INDEX memory_created IF NOT EXISTS FOR (n:Memory) ON (n.created)`,
}

// FullTextIndexStatement declares the optional FTS index over
// Memory(content, summary) mentioned in §6.2. Engines without full-text
// support reject this statement; EnsureSchema treats that failure as a
// capability probe, not a fatal error.
const FullTextIndexStatement = `CREATE FULLTEXT INDEX memory_fulltext IF NOT EXISTS FOR (n:Memory) ON EACH [n.content, n.summary]`

// RelationTypes names the 19 §3.2 relation types, for documentation and for
// callers building relation-type-parameterized queries.
var RelationTypes = []string{
	"HAS_CONCEPT",   // Memory->Concept {relevance}
	"HAS_KEYWORD",   // Memory->Keyword
	"BELONGS_TO",    // Memory->Topic {isPrimary}
	"MENTIONS",      // Memory->Entity {role}
	"FROM_SOURCE",   // Memory->Source {excerpt}
	"IN_CONTEXT",    // Memory->Context
	"INVOLVES",      // Memory->Decision
	"PARTIALLY_ANSWERS", // Memory->Question {completeness}
	"SUPPORTS",      // Memory->Goal {strength}
	"REFLECTS",      // Memory->Preference
	"OCCURRED_AT",   // Memory->TemporalMarker
	"RELATES_TO",    // Memory->Memory {strength, relType, permeability} — the synapse
	"IN_COMPARTMENT", // Memory->Compartment (no properties)
	"RELATED_CONCEPT", // Concept->Concept
	"DEPENDS_ON",    // Goal->Goal
	"LED_TO",        // Decision->Decision
	"PART_OF",       // Context->Context
	"CONFLICTS_WITH", // Contradiction->Memory
	"SUPERSEDES",    // Contradiction->Memory
}
