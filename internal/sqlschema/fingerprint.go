package sqlschema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/cbergoon/merkletree"

	"github.com/hlop3z/alabintro/internal/alerr"
)

// tableContent implements merkletree.Content for table-level hashing.
type tableContent struct {
	hash string
}

func (t tableContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(t.hash))
	return h[:], nil
}

func (t tableContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(tableContent)
	if !ok {
		return false, nil
	}
	return t.hash == o.hash, nil
}

// Fingerprint returns the merkle root (hex) over the tables of s.
// It depends only on table structure, not on catalog order.
func Fingerprint(s *Schema) (string, error) {
	if s == nil || len(s.Tables) == 0 {
		return emptyHash(), nil
	}

	hashes := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		hashes = append(hashes, TableHash(t))
	}
	sort.Strings(hashes)

	contents := make([]merkletree.Content, len(hashes))
	for i, h := range hashes {
		contents[i] = tableContent{hash: h}
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return "", alerr.Wrap(alerr.ErrIntrospection, err, "failed to build merkle tree")
	}
	return hex.EncodeToString(tree.MerkleRoot()), nil
}

// TableHash returns a sha256 hex digest of a table's structure.
func TableHash(t *Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "table:%s\n", t.Name)

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("col:%s:%s:%t:%s", c.Name, strings.ToUpper(c.Type), c.Nullable, c.Default))
	}
	sort.Strings(cols)
	for _, c := range cols {
		b.WriteString(c + "\n")
	}

	fmt.Fprintf(&b, "pk:%s\n", strings.Join(t.PrimaryKey, ","))

	fks := make([]string, 0, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		fks = append(fks, fmt.Sprintf("fk:%s->%s(%s)", strings.Join(fk.Columns, ","),
			fk.ReferencedTableName, strings.Join(fk.ReferencedColumns, ",")))
	}
	sort.Strings(fks)
	for _, fk := range fks {
		b.WriteString(fk + "\n")
	}

	idxs := make([]string, 0, len(t.Indexes))
	for _, idx := range t.Indexes {
		idxs = append(idxs, fmt.Sprintf("idx:%s:%t", strings.Join(idx.Columns, ","), idx.Unique))
	}
	sort.Strings(idxs)
	for _, idx := range idxs {
		b.WriteString(idx + "\n")
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func emptyHash() string {
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}
