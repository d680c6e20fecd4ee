package lookup_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/centraunit/bindery/binding"
	"github.com/centraunit/bindery/lookup"
	"github.com/centraunit/bindery/mock"
	"github.com/stretchr/testify/suite"
)

type LookupTestSuite struct {
	suite.Suite
	l *lookup.Lookup[*mock.Entry]
}

func (s *LookupTestSuite) SetupTest() {
	s.l = lookup.New[*mock.Entry]()
}

func (s *LookupTestSuite) TestAdd() {
	s.Run("AddedValueIsLast", func() {
		a := &mock.Entry{Name: "a"}
		s.NoError(s.l.Add("A", a))

		ok, err := s.l.HasKey("A")
		s.NoError(err)
		s.True(ok)

		values, err := s.l.Get("A")
		s.NoError(err)
		s.Same(a, values[len(values)-1])
	})

	s.Run("DuplicateKeysShareOneEntry", func() {
		s.NoError(s.l.Add("B", &mock.Entry{Name: "b1"}))
		s.NoError(s.l.Add("B", &mock.Entry{Name: "b2"}))

		values, err := s.l.Get("B")
		s.NoError(err)
		s.Equal([]string{"b1", "b2"}, mock.Names(values))
		s.Equal(2, s.l.Len())
		s.Equal([]any{"A", "B"}, s.l.Keys())
	})

	s.Run("IdentifierKinds", func() {
		token := binding.NewToken("C")
		typeKey := binding.TypeOf[mock.Warrior]()

		s.NoError(s.l.Add(token, &mock.Entry{Name: "token"}))
		s.NoError(s.l.Add(typeKey, &mock.Entry{Name: "type"}))

		values, err := s.l.Get(token)
		s.NoError(err)
		s.Equal([]string{"token"}, mock.Names(values))

		values, err = s.l.Get(reflect.TypeOf((*mock.Warrior)(nil)).Elem())
		s.NoError(err)
		s.Equal([]string{"type"}, mock.Names(values))

		_, err = s.l.Get(binding.NewToken("C"))
		var notFound *lookup.KeyNotFoundError
		s.True(errors.As(err, &notFound))
	})
}

func (s *LookupTestSuite) TestNullArguments() {
	var nullErr *lookup.NullArgumentError

	err := s.l.Add(nil, &mock.Entry{Name: "a"})
	s.True(errors.As(err, &nullErr))
	s.Equal("service identifier", nullErr.Argument)
	s.Contains(err.Error(), "null argument")

	err = s.l.Add("A", nil)
	s.True(errors.As(err, &nullErr))
	s.Equal("value", nullErr.Argument)

	s.Equal(0, s.l.Len())
	ok, err := s.l.HasKey("A")
	s.NoError(err)
	s.False(ok)

	_, err = s.l.Get(nil)
	s.True(errors.As(err, &nullErr))
	s.True(errors.As(s.l.Remove(nil), &nullErr))
	_, err = s.l.HasKey(nil)
	s.True(errors.As(err, &nullErr))
}

type compositeKey struct {
	Part any
}

func (s *LookupTestSuite) TestUncomparableKey() {
	var keyErr *lookup.InvalidKeyError

	err := s.l.Add([]string{"A"}, &mock.Entry{Name: "a"})
	s.True(errors.As(err, &keyErr))
	s.Equal("[]string", keyErr.Type)

	_, err = s.l.HasKey(map[string]int{})
	s.True(errors.As(err, &keyErr))
	s.Equal(0, s.l.Len())

	s.Run("CompositeHoldingSlice", func() {
		key := compositeKey{Part: []string{"A"}}

		s.NotPanics(func() { err = s.l.Add(key, &mock.Entry{Name: "a"}) })
		s.True(errors.As(err, &keyErr))
		s.Equal("lookup_test.compositeKey", keyErr.Type)

		s.NotPanics(func() { _, err = s.l.Get(key) })
		s.True(errors.As(err, &keyErr))
		s.NotPanics(func() { _, err = s.l.HasKey(key) })
		s.True(errors.As(err, &keyErr))
		s.NotPanics(func() { err = s.l.Remove(key) })
		s.True(errors.As(err, &keyErr))

		s.NotPanics(func() { _, err = s.l.HasKey([1]any{map[string]int{}}) })
		s.True(errors.As(err, &keyErr))
		s.Equal(0, s.l.Len())
	})

	s.Run("CompositeHoldingComparable", func() {
		s.NoError(s.l.Add(compositeKey{Part: "A"}, &mock.Entry{Name: "a"}))
		ok, err := s.l.HasKey(compositeKey{Part: "A"})
		s.NoError(err)
		s.True(ok)
	})
}

func (s *LookupTestSuite) TestGet() {
	s.Run("MissingKey", func() {
		_, err := s.l.Get("missing")
		var notFound *lookup.KeyNotFoundError
		s.True(errors.As(err, &notFound))
		s.Equal("missing", notFound.ServiceIdentifier)
		s.Contains(err.Error(), "key not found")
	})

	s.Run("SharesElements", func() {
		s.NoError(s.l.Add("A", &mock.Entry{Name: "a"}))

		values, err := s.l.Get("A")
		s.NoError(err)
		values[0].Name = "changed"

		again, err := s.l.Get("A")
		s.NoError(err)
		s.Equal("changed", again[0].Name)
	})

	s.Run("CallerAppendDoesNotLeak", func() {
		values, err := s.l.Get("A")
		s.NoError(err)
		_ = append(values, &mock.Entry{Name: "leak"})

		s.NoError(s.l.Add("A", &mock.Entry{Name: "b"}))
		again, err := s.l.Get("A")
		s.NoError(err)
		s.Equal([]string{"changed", "b"}, mock.Names(again))
	})
}

func (s *LookupTestSuite) TestRemove() {
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a"}))
	s.NoError(s.l.Add("B", &mock.Entry{Name: "b"}))

	s.NoError(s.l.Remove("A"))

	ok, err := s.l.HasKey("A")
	s.NoError(err)
	s.False(ok)

	_, err = s.l.Get("A")
	var notFound *lookup.KeyNotFoundError
	s.True(errors.As(err, &notFound))

	s.True(errors.As(s.l.Remove("A"), &notFound))
	s.Equal([]any{"B"}, s.l.Keys())

	s.Run("ReAddCreatesFreshEntry", func() {
		s.NoError(s.l.Add("A", &mock.Entry{Name: "a2"}))
		s.Equal([]any{"B", "A"}, s.l.Keys())
		values, err := s.l.Get("A")
		s.NoError(err)
		s.Equal([]string{"a2"}, mock.Names(values))
	})
}

func (s *LookupTestSuite) TestRemoveByModuleID() {
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a1", Module: "x"}))
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a2", Module: "y"}))
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a3", Module: "x"}))
	s.NoError(s.l.Add("B", &mock.Entry{Name: "b1", Module: "x"}))
	s.NoError(s.l.Add("C", &mock.Entry{Name: "c1"}))
	s.NoError(s.l.Add("C", &mock.Entry{Name: "c2", Module: "y"}))

	s.l.RemoveByModuleID("x")

	values, err := s.l.Get("A")
	s.NoError(err)
	s.Equal([]string{"a2"}, mock.Names(values))

	ok, err := s.l.HasKey("B")
	s.NoError(err)
	s.False(ok)

	values, err = s.l.Get("C")
	s.NoError(err)
	s.Equal([]string{"c1", "c2"}, mock.Names(values))
	s.Equal([]any{"A", "C"}, s.l.Keys())

	s.Run("NoMatchIsNoOp", func() {
		s.l.RemoveByModuleID("unknown")
		s.Equal([]any{"A", "C"}, s.l.Keys())
	})

	s.Run("RemovedKeyCanBeAddedAgain", func() {
		s.NoError(s.l.Add("B", &mock.Entry{Name: "b2"}))
		s.Equal([]any{"A", "C", "B"}, s.l.Keys())
	})

	s.Run("EmptyLookup", func() {
		empty := lookup.New[*mock.Entry]()
		empty.RemoveByModuleID("x")
		s.Equal(0, empty.Len())
	})
}

func (s *LookupTestSuite) TestRemoveFunc() {
	a1 := &mock.Entry{Name: "a1", Module: "x"}
	a2 := &mock.Entry{Name: "a2", Module: "x"}
	b1 := &mock.Entry{Name: "b1", Module: "x"}
	s.NoError(s.l.Add("A", a1))
	s.NoError(s.l.Add("A", a2))
	s.NoError(s.l.Add("B", b1))

	s.l.RemoveFunc(func(e *mock.Entry) bool { return e == a2 || e == b1 })

	values, err := s.l.Get("A")
	s.NoError(err)
	s.Equal([]string{"a1"}, mock.Names(values))
	s.Equal([]any{"A"}, s.l.Keys())

	ok, err := s.l.HasKey("B")
	s.NoError(err)
	s.False(ok)
}

func (s *LookupTestSuite) TestClone() {
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a1"}))
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a2"}))
	s.NoError(s.l.Add("B", &mock.Entry{Name: "b1"}))

	c := s.l.Clone()
	s.Equal(s.l.Keys(), c.Keys())

	original, err := s.l.Get("A")
	s.NoError(err)
	cloned, err := c.Get("A")
	s.NoError(err)
	s.Equal(mock.Names(original), mock.Names(cloned))
	for i := range cloned {
		s.NotSame(original[i], cloned[i])
		s.Equal(1, cloned[i].Clones)
	}

	s.Run("CloneMutationsStayLocal", func() {
		s.NoError(c.Add("A", &mock.Entry{Name: "a3"}))
		s.NoError(c.Remove("B"))
		s.NoError(c.Add("D", &mock.Entry{Name: "d1"}))

		values, err := s.l.Get("A")
		s.NoError(err)
		s.Equal([]string{"a1", "a2"}, mock.Names(values))
		ok, err := s.l.HasKey("B")
		s.NoError(err)
		s.True(ok)
		ok, err = s.l.HasKey("D")
		s.NoError(err)
		s.False(ok)
	})

	s.Run("OriginalMutationsStayLocal", func() {
		s.NoError(s.l.Add("E", &mock.Entry{Name: "e1"}))
		s.l.RemoveByModuleID("")

		ok, err := c.HasKey("E")
		s.NoError(err)
		s.False(ok)
		values, err := c.Get("A")
		s.NoError(err)
		s.Equal([]string{"a1", "a2", "a3"}, mock.Names(values))
	})
}

func (s *LookupTestSuite) TestTraverse() {
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a1"}))
	s.NoError(s.l.Add("B", &mock.Entry{Name: "b1"}))
	s.NoError(s.l.Add("A", &mock.Entry{Name: "a2"}))

	var visited []string
	s.l.Traverse(func(id any, values []*mock.Entry) bool {
		visited = append(visited, id.(string))
		visited = append(visited, mock.Names(values)...)
		return true
	})
	s.Equal([]string{"A", "a1", "a2", "B", "b1"}, visited)

	count := 0
	s.l.Traverse(func(any, []*mock.Entry) bool {
		count++
		return false
	})
	s.Equal(1, count)
}

func TestLookupSuite(t *testing.T) {
	suite.Run(t, new(LookupTestSuite))
}

// Bindings are the values a container stores; the lookup must clone them with
// fresh identities and preserved configuration.
func TestLookupOfBindings(t *testing.T) {
	l := lookup.New[*binding.Binding[mock.Weapon]]()

	b := binding.New[mock.Weapon](mock.WeaponID)
	b.Strategy = binding.InstanceOf[mock.Weapon]{Implementation: reflect.TypeOf(mock.Katana{})}
	b.Scope = binding.ScopeSingleton
	b.Activated = true
	if err := l.Add(mock.WeaponID, b); err != nil {
		t.Fatal(err)
	}

	var nilBinding *binding.Binding[mock.Weapon]
	var nullErr *lookup.NullArgumentError
	if err := l.Add(mock.WeaponID, nilBinding); !errors.As(err, &nullErr) {
		t.Fatalf("expected null argument error, got %v", err)
	}

	c := l.Clone()
	values, err := c.Get(mock.WeaponID)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(values))
	}
	cb := values[0]
	if cb.ID() == b.ID() {
		t.Error("cloned binding kept its identity")
	}
	if cb.Activated {
		t.Error("cloned binding kept its activation state")
	}
	if cb.Type() != b.Type() || cb.Scope != b.Scope || cb.ImplementationType() != b.ImplementationType() {
		t.Errorf("cloned binding configuration differs: %v vs %v", cb, b)
	}
}
