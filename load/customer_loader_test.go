package load

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *utils.ETLLogger {
	return utils.NewDiscardLogger()
}

func TestCustomerLoader_FullRefreshInSingleTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM dim_customers").WillReturnResult(sqlmock.NewResult(0, 2))
	prepared := mock.ExpectPrepare("INSERT INTO dim_customers")
	prepared.ExpectExec().
		WithArgs(1, 11000, "AW00011000", "Jon", "Yang", "Jon Yang", "Married", "Male", "Australia", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prepared.ExpectExec().
		WithArgs(2, 11001, "AW00011001", "Eugene", "Huang", "Eugene Huang", "Single", "Male", "n/a", nil, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	loader := NewCustomerLoader(db, testLogger())
	err = loader.Load([]models.DimCustomer{
		{CustomerKey: 1, CustomerID: 11000, CustomerNumber: "AW00011000", FirstName: "Jon", LastName: "Yang", FullName: "Jon Yang", MaritalStatus: "Married", Gender: "Male", Country: "Australia"},
		{CustomerKey: 2, CustomerID: 11001, CustomerNumber: "AW00011001", FirstName: "Eugene", LastName: "Huang", FullName: "Eugene Huang", MaritalStatus: "Single", Gender: "Male", Country: "n/a"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerLoader_RollbackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM dim_customers").WillReturnResult(sqlmock.NewResult(0, 0))
	prepared := mock.ExpectPrepare("INSERT INTO dim_customers")
	prepared.ExpectExec().WillReturnError(errors.New("data too long"))
	mock.ExpectRollback()

	loader := NewCustomerLoader(db, testLogger())
	err = loader.Load([]models.DimCustomer{
		{CustomerKey: 1, CustomerID: 11000, CustomerNumber: "AW00011000"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
