package canonical

// Builtin is the static ingredient database. Aliases are matched after normalisation.
var Builtin = []Entry{
	{Name: "Onion", Aliases: []string{"onions", "brown onion", "brown onions", "yellow onion", "white onion"}},
	{Name: "Red Onion", Aliases: []string{"red onions", "purple onion"}},
	{Name: "Spring Onion", Aliases: []string{"spring onions", "scallion", "scallions", "green onion", "green onions"}},
	{Name: "Garlic", Aliases: []string{"garlic clove", "garlic cloves", "clove of garlic", "cloves of garlic"}},
	{Name: "Tomato", Aliases: []string{"tomatoes", "vine tomatoes", "plum tomato", "plum tomatoes"}},
	{Name: "Cherry Tomato", Aliases: []string{"cherry tomatoes"}},
	{Name: "Tinned Tomatoes", Aliases: []string{"canned tomatoes", "tin of tomatoes", "tinned plum tomatoes"}},
	{Name: "Tomato Puree", Aliases: []string{"tomato paste", "tomato purée"}},
	{Name: "Potato", Aliases: []string{"potatoes", "baking potato", "baking potatoes"}},
	{Name: "Sweet Potato", Aliases: []string{"sweet potatoes"}},
	{Name: "Carrot", Aliases: []string{"carrots"}},
	{Name: "Celery", Aliases: []string{"celery stick", "celery sticks", "celery stalk", "celery stalks"}},
	{Name: "Pepper", Aliases: []string{"peppers", "bell pepper", "bell peppers", "capsicum", "red pepper", "green pepper"}},
	{Name: "Chilli", Aliases: []string{"chili", "chilies", "chillies", "red chilli", "green chilli"}},
	{Name: "Mushroom", Aliases: []string{"mushrooms", "button mushrooms", "chestnut mushrooms"}},
	{Name: "Spinach", Aliases: []string{"baby spinach", "spinach leaves"}},
	{Name: "Broccoli", Aliases: []string{"broccoli florets", "tenderstem broccoli"}},
	{Name: "Aubergine", Aliases: []string{"aubergines", "eggplant", "eggplants"}},
	{Name: "Courgette", Aliases: []string{"courgettes"}},
	{Name: "Peas", Aliases: []string{"pea", "garden peas", "petit pois"}},
	{Name: "Lemon", Aliases: []string{"lemons", "lemon juice", "juice of lemon"}},
	{Name: "Lime", Aliases: []string{"limes", "lime juice"}},
	{Name: "Ginger", Aliases: []string{"root ginger", "ginger root"}},
	{Name: "Coriander", Aliases: []string{"coriander leaves"}},
	{Name: "Parsley", Aliases: []string{"flat leaf parsley", "curly parsley"}},
	{Name: "Basil", Aliases: []string{"basil leaves"}},
	{Name: "Chicken Breast", Aliases: []string{"chicken breasts", "chicken breast fillet", "chicken breast fillets"}},
	{Name: "Chicken Thigh", Aliases: []string{"chicken thighs", "chicken thigh fillets"}},
	{Name: "Beef Mince", Aliases: []string{"minced beef", "ground beef", "lean beef mince"}},
	{Name: "Bacon", Aliases: []string{"bacon rashers", "streaky bacon", "smoked bacon", "lardons"}},
	{Name: "Salmon", Aliases: []string{"salmon fillet", "salmon fillets"}},
	{Name: "Prawns", Aliases: []string{"prawn", "king prawns", "shrimp"}},
	{Name: "Egg", Aliases: []string{"eggs", "free range eggs"}},
	{Name: "Milk", Aliases: []string{"whole milk", "semi skimmed milk", "skimmed milk"}},
	{Name: "Butter", Aliases: []string{"unsalted butter", "salted butter"}},
	{Name: "Cheddar", Aliases: []string{"cheddar cheese", "mature cheddar"}},
	{Name: "Parmesan", Aliases: []string{"parmesan cheese", "parmigiano reggiano"}},
	{Name: "Mozzarella", Aliases: []string{"mozzarella cheese", "mozzarella ball"}},
	{Name: "Double Cream", Aliases: []string{"heavy cream", "whipping cream"}},
	{Name: "Creme Fraiche", Aliases: []string{"crème fraîche"}},
	{Name: "Greek Yoghurt", Aliases: []string{"greek yogurt", "natural yoghurt", "natural yogurt", "yoghurt", "yogurt"}},
	{Name: "Rice", Aliases: []string{"basmati rice", "long grain rice", "white rice"}},
	{Name: "Pasta", Aliases: []string{"penne", "fusilli", "rigatoni", "dried pasta"}},
	{Name: "Spaghetti", Aliases: []string{"dried spaghetti"}},
	{Name: "Noodles", Aliases: []string{"egg noodles", "rice noodles"}},
	{Name: "Plain Flour", Aliases: []string{"flour", "all purpose flour"}},
	{Name: "Bread", Aliases: []string{"loaf", "sliced bread"}},
	{Name: "Tortilla Wraps", Aliases: []string{"tortillas", "wraps", "flour tortillas"}},
	{Name: "Olive Oil", Aliases: []string{"extra virgin olive oil", "evoo"}},
	{Name: "Vegetable Oil", Aliases: []string{"sunflower oil", "rapeseed oil", "oil"}},
	{Name: "Salt", Aliases: []string{"sea salt", "table salt", "salt and pepper"}},
	{Name: "Black Pepper", Aliases: []string{"ground black pepper", "cracked black pepper", "pepper to season"}},
	{Name: "Sugar", Aliases: []string{"caster sugar", "granulated sugar", "white sugar"}},
	{Name: "Honey", Aliases: []string{"runny honey"}},
	{Name: "Soy Sauce", Aliases: []string{"light soy sauce", "dark soy sauce", "soya sauce"}},
	{Name: "Stock Cube", Aliases: []string{"stock cubes", "chicken stock cube", "vegetable stock cube", "beef stock cube"}},
	{Name: "Chicken Stock", Aliases: []string{"chicken broth"}},
	{Name: "Vegetable Stock", Aliases: []string{"vegetable broth", "veg stock"}},
	{Name: "Cumin", Aliases: []string{"ground cumin", "cumin seeds"}},
	{Name: "Paprika", Aliases: []string{"smoked paprika", "sweet paprika"}},
	{Name: "Chickpeas", Aliases: []string{"chickpea", "garbanzo beans"}},
	{Name: "Kidney Beans", Aliases: []string{"red kidney beans"}},
	{Name: "Coconut Milk", Aliases: []string{"light coconut milk", "tinned coconut milk"}},
}

// Extras are curated synonyms that override the database aliases.
var Extras = map[string]string{
	"cilantro":  "Coriander",
	"zucchini":  "Courgette",
	"zucchinis": "Courgette",
	"courgette": "Courgette",
	"rocket":    "Rocket",
	"arugula":   "Rocket",
	"garbanzos": "Chickpeas",

	"confectioners sugar": "Icing Sugar",
	"powdered sugar":      "Icing Sugar",
}

// descriptors are removed from names as whole words before lookup
var descriptors = []string{
	"finely chopped", "roughly chopped", "finely diced", "finely sliced", "thinly sliced",
	"finely grated", "freshly grated", "freshly ground", "to taste", "to serve", "for serving",
	"at room temperature", "room temperature",
	"chopped", "diced", "sliced", "minced", "grated", "crushed", "peeled", "deseeded",
	"fresh", "freshly", "large", "medium", "small", "optional", "ripe", "rinsed", "drained",
	"trimmed", "halved", "quartered", "softened", "melted", "beaten", "organic", "washed",
}
