package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUnknownResource = errors.New("unknown_resource")

// Store keeps every licensing entity in one table and enforces the
// parent/child hierarchy between them.
type Store struct {
	db      *gorm.DB
	node    *snowflake.Node
	schemas map[string]Schema
}

func New(db *gorm.DB, node *snowflake.Node, schemas ...Schema) *Store {
	if len(schemas) == 0 {
		schemas = DefaultSchemas()
	}
	index := make(map[string]Schema, len(schemas))
	for _, s := range schemas {
		index[s.Resource] = s
	}
	return &Store{db: db, node: node, schemas: index}
}

// Schema returns the schema registered for resource.
func (s *Store) Schema(resource string) (Schema, error) {
	schema, ok := s.schemas[resource]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return schema, nil
}

// Create stores a new entity. A blank number is generated from the schema
// prefix; every referenced parent must exist.
func (s *Store) Create(ctx context.Context, resource string, props map[string]string) (Entry, error) {
	schema, err := s.Schema(resource)
	if err != nil {
		return Entry{}, err
	}
	props = clean(props)
	number := props[entity.PropNumber]
	delete(props, entity.PropNumber)
	if number == "" {
		number = schema.Prefix + strings.ToUpper(s.node.Generate().Base36())
	}

	rec := Record{
		ID:         s.node.Generate().Int64(),
		Resource:   resource,
		Number:     number,
		Properties: toJSONMap(props),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkUnique(tx, schema, number); err != nil {
			return err
		}
		if err := s.checkParents(tx, schema, props); err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return Entry{}, err
	}
	return s.entry(s.db.WithContext(ctx), rec)
}

func (s *Store) Get(ctx context.Context, resource, number string) (Entry, error) {
	schema, err := s.Schema(resource)
	if err != nil {
		return Entry{}, err
	}
	db := s.db.WithContext(ctx)
	rec, err := s.find(db, schema, number)
	if err != nil {
		return Entry{}, err
	}
	return s.entry(db, rec)
}

// List returns the entities of resource matching filter, a list of
// name=value pairs separated by semicolons. The number is matched against
// its own column; every other name against the stored properties.
func (s *Store) List(ctx context.Context, resource, filter string) ([]Entry, error) {
	if _, err := s.Schema(resource); err != nil {
		return nil, err
	}
	pairs, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	query := db.Where("resource = ?", resource)
	for _, p := range pairs {
		if p.Name == entity.PropNumber {
			query = query.Where("number = ?", p.Value)
			continue
		}
		query = query.Where(datatypes.JSONQuery("properties").Equals(p.Value, p.Name))
	}

	var recs []Record
	if err := query.Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		e, err := s.entry(db, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Update merges patch into the stored entity. Blank values in patch leave
// the stored value untouched. The number can only change while no other
// entity refers to it.
func (s *Store) Update(ctx context.Context, resource, number string, patch map[string]string) (Entry, error) {
	schema, err := s.Schema(resource)
	if err != nil {
		return Entry{}, err
	}
	patch = clean(patch)

	var rec Record
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err = s.find(tx, schema, number)
		if err != nil {
			return err
		}

		if renamed := patch[entity.PropNumber]; renamed != "" && renamed != rec.Number {
			children, err := s.children(tx, schema, rec.Number)
			if err != nil {
				return err
			}
			if len(children) > 0 {
				return apierror.IllegalOperation(entity.PropNumber,
					fmt.Sprintf("Number of the %s '%s' can not be changed while it is in use.", schema.Label, rec.Number))
			}
			if err := s.checkUnique(tx, schema, renamed); err != nil {
				return err
			}
			rec.Number = renamed
		}
		delete(patch, entity.PropNumber)

		props := rec.properties()
		for k, v := range patch {
			props[k] = v
		}
		if err := s.checkParents(tx, schema, props); err != nil {
			return err
		}
		rec.Properties = toJSONMap(props)
		return tx.Save(&rec).Error
	})
	if err != nil {
		return Entry{}, err
	}
	return s.entry(s.db.WithContext(ctx), rec)
}

// Delete removes the entity. Entities other records depend on are only
// removed with forceCascade, together with all their dependents.
func (s *Store) Delete(ctx context.Context, resource, number string, forceCascade bool) error {
	schema, err := s.Schema(resource)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.find(tx, schema, number)
		if err != nil {
			return err
		}
		children, err := s.children(tx, schema, rec.Number)
		if err != nil {
			return err
		}
		if len(children) > 0 && !forceCascade {
			return apierror.IllegalOperation("",
				fmt.Sprintf("The %s '%s' is in use and can only be deleted with forceCascade.", schema.Label, rec.Number))
		}
		return s.deleteTree(tx, rec)
	})
}

func (s *Store) deleteTree(tx *gorm.DB, rec Record) error {
	schema := s.schemas[rec.Resource]
	children, err := s.children(tx, schema, rec.Number)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteTree(tx, child); err != nil {
			return err
		}
	}
	return tx.Delete(&Record{}, rec.ID).Error
}

func (s *Store) find(db *gorm.DB, schema Schema, number string) (Record, error) {
	var rec Record
	err := db.Where("resource = ? AND number = ?", schema.Resource, strings.TrimSpace(number)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, apierror.NotFound(fmt.Sprintf("Requested %s does not exist.", schema.Label))
	}
	return rec, err
}

func (s *Store) checkUnique(db *gorm.DB, schema Schema, number string) error {
	var count int64
	if err := db.Model(&Record{}).Where("resource = ? AND number = ?", schema.Resource, number).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apierror.MalformedRequest(entity.PropNumber,
			fmt.Sprintf("A %s with number '%s' already exists.", schema.Label, number))
	}
	return nil
}

func (s *Store) checkParents(db *gorm.DB, schema Schema, props map[string]string) error {
	for _, rel := range schema.Parents {
		parentNumber := props[rel.Field]
		if parentNumber == "" {
			continue
		}
		if _, err := s.find(db, s.schemas[rel.Resource], parentNumber); err != nil {
			return err
		}
	}
	return nil
}

// children returns every record referring to number of schema's resource.
func (s *Store) children(db *gorm.DB, schema Schema, number string) ([]Record, error) {
	var out []Record
	for _, resource := range s.resources() {
		child := s.schemas[resource]
		for _, rel := range child.Parents {
			if rel.Resource != schema.Resource {
				continue
			}
			var recs []Record
			err := db.Where("resource = ?", child.Resource).
				Where(datatypes.JSONQuery("properties").Equals(number, rel.Field)).
				Order("id").
				Find(&recs).Error
			if err != nil {
				return nil, err
			}
			out = append(out, recs...)
		}
	}
	return out, nil
}

func (s *Store) entry(db *gorm.DB, rec Record) (Entry, error) {
	children, err := s.children(db, s.schemas[rec.Resource], rec.Number)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Resource:   rec.Resource,
		Number:     rec.Number,
		Properties: rec.properties(),
		InUse:      len(children) > 0,
	}, nil
}

func (s *Store) resources() []string {
	out := make([]string, 0, len(s.schemas))
	for r := range s.schemas {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// clean drops blank values and the service-owned inUse state.
func clean(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		k = strings.TrimSpace(k)
		if k == "" || v == "" || k == entity.PropInUse {
			continue
		}
		out[k] = v
	}
	return out
}
