//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Graph(
		id STRING,
		language STRING,
		token_count INT64,
		record_count INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Token(
		id STRING,
		graph_id STRING,
		position INT64,
		text STRING,
		category STRING,
		role STRING,
		owner INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS HAS_TOKEN(FROM Graph TO Token)`,
	`CREATE REL TABLE IF NOT EXISTS CHILD(FROM Token TO Token)`,
	`CREATE REL TABLE IF NOT EXISTS FLOWS_TO(FROM Token TO Token)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddGraph inserts a Graph node.
func (s *KuzuStore) AddGraph(_ context.Context, meta GraphMeta) error {
	return s.exec(
		"CREATE (g:Graph {id: $id, language: $lang, token_count: $tc, record_count: $rc})",
		map[string]any{
			"id":   meta.ID,
			"lang": meta.Language,
			"tc":   int64(meta.TokenCount),
			"rc":   int64(meta.RecordCount),
		},
	)
}

// AddToken inserts a Token node and links it to its Graph.
func (s *KuzuStore) AddToken(_ context.Context, token TokenNode) error {
	return s.exec(
		`MATCH (g:Graph {id: $gid})
		 CREATE (g)-[:HAS_TOKEN]->(:Token {
			id: $id,
			graph_id: $gid,
			position: $pos,
			text: $text,
			category: $cat,
			role: $role,
			owner: $owner
		 })`,
		map[string]any{
			"id":    tokenID(token.GraphID, token.Position),
			"gid":   token.GraphID,
			"pos":   int64(token.Position),
			"text":  token.Text,
			"cat":   token.Category,
			"role":  token.Role,
			"owner": int64(token.Owner),
		},
	)
}

// AddEdge inserts a relationship between two tokens of the same graph.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	cypher, err := edgeCypher(edge.Kind)
	if err != nil {
		return err
	}
	return s.exec(cypher, map[string]any{
		"src": tokenID(edge.GraphID, edge.From),
		"dst": tokenID(edge.GraphID, edge.To),
	})
}

// edgeCypher returns the MATCH-CREATE Cypher for the given edge kind.
func edgeCypher(kind EdgeKind) (string, error) {
	switch kind {
	case EdgeKindChild:
		return `MATCH (a:Token {id: $src}), (b:Token {id: $dst})
				CREATE (a)-[:CHILD]->(b)`, nil
	case EdgeKindFlow:
		return `MATCH (a:Token {id: $src}), (b:Token {id: $dst})
				CREATE (a)-[:FLOWS_TO]->(b)`, nil
	default:
		return "", fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
}

// ---------- Read operations ----------

// GetGraph retrieves a Graph node by ID, or returns nil if not found.
func (s *KuzuStore) GetGraph(_ context.Context, id string) (*GraphMeta, error) {
	rows, err := s.query(
		"MATCH (g:Graph {id: $id}) RETURN g.id, g.language, g.token_count, g.record_count",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &GraphMeta{
		ID:          toString(r[0]),
		Language:    toString(r[1]),
		TokenCount:  toInt(r[2]),
		RecordCount: toInt(r[3]),
	}, nil
}

// GetTokens returns the tokens of a graph ordered by position.
func (s *KuzuStore) GetTokens(_ context.Context, graphID string) ([]TokenNode, error) {
	rows, err := s.query(
		`MATCH (g:Graph {id: $gid})-[:HAS_TOKEN]->(t:Token)
		 RETURN t.position, t.text, t.category, t.role, t.owner
		 ORDER BY t.position`,
		map[string]any{"gid": graphID},
	)
	if err != nil {
		return nil, err
	}
	out := make([]TokenNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, TokenNode{
			GraphID:  graphID,
			Position: toInt(r[0]),
			Text:     toString(r[1]),
			Category: toString(r[2]),
			Role:     toString(r[3]),
			Owner:    toInt(r[4]),
		})
	}
	return out, nil
}

// GetEdges returns the edges of one graph, ordered by kind, From and To.
func (s *KuzuStore) GetEdges(_ context.Context, graphID string, kind EdgeKind) ([]Edge, error) {
	kinds := EdgeKinds
	if kind != "" {
		if _, err := edgeCypher(kind); err != nil {
			return nil, err
		}
		kinds = []EdgeKind{kind}
	}

	var edges []Edge
	for _, k := range kinds {
		// Relationship table names are fixed internal constants.
		cypher := fmt.Sprintf(
			`MATCH (a:Token)-[:%s]->(b:Token)
			 WHERE a.graph_id = $gid
			 RETURN a.position, b.position`, k)
		rows, err := s.query(cypher, map[string]any{"gid": graphID})
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			edges = append(edges, Edge{
				GraphID: graphID,
				From:    toInt(r[0]),
				To:      toInt(r[1]),
				Kind:    k,
			})
		}
	}
	sortEdges(edges)
	return edges, nil
}

// DataFlowSources follows FLOWS_TO edges out of one token.
func (s *KuzuStore) DataFlowSources(_ context.Context, graphID string, position int) ([]int, error) {
	rows, err := s.query(
		`MATCH (a:Token {id: $id})-[:FLOWS_TO]->(b:Token)
		 RETURN b.position ORDER BY b.position`,
		map[string]any{"id": tokenID(graphID, position)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, toInt(r[0]))
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of graphs, tokens and stored edges.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	graphs, err := s.countTable("Graph")
	if err != nil {
		return nil, err
	}
	tokens, err := s.countTable("Token")
	if err != nil {
		return nil, err
	}
	edges, err := s.countEdges()
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		GraphCount: graphs,
		TokenCount: tokens,
		EdgeCount:  edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// countEdges returns the number of CHILD and FLOWS_TO relationships.
func (s *KuzuStore) countEdges() (int, error) {
	total := 0
	for _, k := range EdgeKinds {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", k)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// tokenID produces the primary key of a token: "graphID:position".
func tokenID(graphID string, position int) string {
	return fmt.Sprintf("%s:%d", graphID, position)
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
