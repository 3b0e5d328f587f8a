package scheduling

// Actor identifica al usuario administrativo que ejecuta la mutación.
// El alcance por sede se evalúa como precondición en cada caso de uso.
type Actor struct {
	ID           uint
	Role         string
	HomeLocation string
}
