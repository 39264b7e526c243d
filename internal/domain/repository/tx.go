package repository

// Tx agrupa los repositorios atados a una misma transacción de base de
// datos. Lo produce el TxRunner de infraestructura; los use cases que crean
// documentos lo reciben en su callback y todo lo que hagan con estos repos
// se confirma o revierte junto.
type Tx struct {
	Products    ProductRepository
	Materials   RawMaterialRepository
	Suppliers   SupplierRepository
	Customers   CustomerRepository
	Purchases   PurchaseOrderRepository
	Sales       SaleRepository
	Production  ProductionOrderRepository
	Movements   InventoryMovementRepository
	Sequences   SequenceRepository
	Logs        SystemLogRepository
}
