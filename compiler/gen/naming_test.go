package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	assert.Equal(t, "order_item", snake("OrderItem"))
	assert.Equal(t, "created_at", snake("CreatedAt"))
	assert.Equal(t, "name", snake("Name"))
	assert.Equal(t, "customer_id", snake("CustomerID"))
}

func TestPascal(t *testing.T) {
	assert.Equal(t, "FullName", pascal("full_name"))
	assert.Equal(t, "Street", pascal("street"))
	assert.Equal(t, "PostalCode", pascal("postal-code"))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "purchase_orders", tableName("purchase_orders", "Order"))
	assert.Equal(t, "orderitem", tableName("", "OrderItem"))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "customer_name", columnName("customer_name", "Name"))
	assert.Equal(t, "created_at", columnName("", "CreatedAt"))
}

func TestBackrefName(t *testing.T) {
	assert.Equal(t, "customer", backrefName("store.Customer"))
	assert.Equal(t, "order_item", backrefName("example.com/app/store.OrderItem"))
	assert.Equal(t, "customer", backrefName("Customer"))
}
