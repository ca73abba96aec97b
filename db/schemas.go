package db

var schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_id UUID PRIMARY KEY,
	customer_id VARCHAR(255) NOT NULL,
	status VARCHAR(16) NOT NULL,
	message VARCHAR(255) NOT NULL DEFAULT '',
	reason VARCHAR(255) NOT NULL DEFAULT '',
	shipping_country VARCHAR(64) NOT NULL DEFAULT '',
	shipping_city VARCHAR(128) NOT NULL DEFAULT '',
	shipping_street VARCHAR(255) NOT NULL DEFAULT '',
	shipping_postal_code VARCHAR(32) NOT NULL DEFAULT '',
	shipping_zip VARCHAR(32) NOT NULL DEFAULT '',
	payment_reference VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id UUID NOT NULL,
	product_id UUID NOT NULL,
	quantity INT NOT NULL,

	PRIMARY KEY (order_id, product_id)
);

CREATE TABLE IF NOT EXISTS products_stock (
	product_id UUID PRIMARY KEY,
	available_stock INT NOT NULL CHECK (available_stock >= 0),
	reserved_stock INT NOT NULL CHECK (reserved_stock >= 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMPTZ NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
