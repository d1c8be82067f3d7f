package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextID(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		var got int
		err := db.Update(func(txn *badger.Txn) error {
			var err error
			got, err = getNextID(txn, "seq:test")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestGetNextIDCorruptSequence(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("seq:bad"), []byte("x"))
	}))

	err := db.Update(func(txn *badger.Txn) error {
		_, err := getNextID(txn, "seq:bad")
		return err
	})
	assert.Error(t, err)
}

func TestSubmissionKeyOrdering(t *testing.T) {
	assert.Less(t, string(submissionKey(9)), string(submissionKey(10)))
	assert.Equal(t, "submission:0000000042", string(submissionKey(42)))
}

func TestEntityRoundTripErrors(t *testing.T) {
	_, err := marshalEntity(make(chan int))
	assert.Error(t, err)

	var v struct{ A int }
	assert.Error(t, unmarshalEntity([]byte("{"), &v))
}
