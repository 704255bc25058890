package intent

// trainingCorpus maps each wpapi.<resource>.<action> label to example
// utterances, in French and English. The %id% placeholder marks a numeric
// slot and matches any number in the input; other %...% placeholders mark
// free-text slots and are filled by entity extraction, not token matching.
var trainingCorpus = map[string][]string{
	"wpapi.posts.get": {
		"liste les articles",
		"affiche tous les articles",
		"montre moi les articles",
		"liste les articles du blog",
		"list the posts",
		"show all posts",
	},
	"wpapi.posts.getById": {
		"affiche l'article %id%",
		"montre l'article %id%",
		"donne moi l'article %id%",
		"show post %id%",
		"get post %id%",
	},
	"wpapi.posts.create": {
		"crée un article",
		"crée un nouvel article",
		"ajoute un article",
		"rédige un nouvel article",
		"create a post",
		"write a new post",
	},
	"wpapi.posts.update": {
		"modifie l'article %id%",
		"mets à jour l'article %id%",
		"change le titre de l'article %id%",
		"update post %id%",
		"edit post %id%",
	},
	"wpapi.posts.delete": {
		"supprime l'article %id%",
		"efface l'article %id%",
		"retire l'article %id%",
		"delete post %id%",
		"remove post %id%",
	},

	"wpapi.pages.get": {
		"liste les pages",
		"affiche toutes les pages",
		"montre moi les pages du site",
		"list the pages",
		"show all pages",
	},
	"wpapi.pages.getById": {
		"affiche la page %id%",
		"montre la page %id%",
		"show page %id%",
		"get page %id%",
	},
	"wpapi.pages.create": {
		"crée une page",
		"crée une nouvelle page",
		"ajoute une page",
		"create a page",
		"add a new page",
	},
	"wpapi.pages.update": {
		"modifie la page %id%",
		"mets à jour la page %id%",
		"update page %id%",
		"edit page %id%",
	},
	"wpapi.pages.delete": {
		"supprime la page %id%",
		"efface la page %id%",
		"delete page %id%",
		"remove page %id%",
	},

	"wpapi.media.get": {
		"liste les médias",
		"affiche la bibliothèque de médias",
		"montre moi les images",
		"list the media library",
		"show all media",
	},
	"wpapi.media.getById": {
		"affiche le média %id%",
		"montre le média %id%",
		"show media %id%",
		"get media item %id%",
	},
	"wpapi.media.upload": {
		"téléverse un fichier %file%",
		"envoie l'image %file%",
		"ajoute le fichier %file% à la bibliothèque",
		"upload the file %file%",
		"upload an image",
	},
	"wpapi.media.delete": {
		"supprime le média %id%",
		"efface l'image %id%",
		"delete media %id%",
		"remove media item %id%",
	},

	"wpapi.users.get": {
		"liste les utilisateurs",
		"affiche tous les utilisateurs",
		"montre moi les comptes",
		"list the users",
		"show all users",
	},
	"wpapi.users.getById": {
		"affiche l'utilisateur %id%",
		"montre l'utilisateur %id%",
		"show user %id%",
		"get user %id%",
	},
	"wpapi.users.create": {
		"crée un utilisateur",
		"ajoute un nouvel utilisateur",
		"crée un compte utilisateur",
		"create a user",
		"add a new user",
	},
	"wpapi.users.update": {
		"modifie l'utilisateur %id%",
		"mets à jour l'utilisateur %id%",
		"update user %id%",
		"edit user %id%",
	},
	"wpapi.users.delete": {
		"supprime l'utilisateur %id%",
		"efface l'utilisateur %id%",
		"delete user %id%",
		"remove user %id%",
	},

	"wpapi.categories.get": {
		"liste les catégories",
		"affiche toutes les catégories",
		"montre moi les catégories",
		"list the categories",
		"show all categories",
	},
	"wpapi.categories.getById": {
		"affiche la catégorie %id%",
		"montre la catégorie %id%",
		"show category %id%",
		"get category %id%",
	},
	"wpapi.categories.create": {
		"crée une catégorie",
		"ajoute une nouvelle catégorie",
		"create a category",
		"add a new category",
	},
	"wpapi.categories.update": {
		"modifie la catégorie %id%",
		"renomme la catégorie %id%",
		"update category %id%",
		"edit category %id%",
	},
	"wpapi.categories.delete": {
		"supprime la catégorie %id%",
		"efface la catégorie %id%",
		"delete category %id%",
		"remove category %id%",
	},

	"wpapi.tags.get": {
		"liste les étiquettes",
		"affiche tous les tags",
		"montre moi les étiquettes",
		"list the tags",
		"show all tags",
	},
	"wpapi.tags.getById": {
		"affiche l'étiquette %id%",
		"montre le tag %id%",
		"show tag %id%",
		"get tag %id%",
	},
	"wpapi.tags.create": {
		"crée une étiquette",
		"ajoute un nouveau tag",
		"create a tag",
		"add a new tag",
	},
	"wpapi.tags.update": {
		"modifie l'étiquette %id%",
		"renomme le tag %id%",
		"update tag %id%",
		"edit tag %id%",
	},
	"wpapi.tags.delete": {
		"supprime l'étiquette %id%",
		"efface le tag %id%",
		"delete tag %id%",
		"remove tag %id%",
	},

	"wpapi.comments.get": {
		"liste les commentaires",
		"affiche tous les commentaires",
		"montre moi les commentaires",
		"list the comments",
		"show all comments",
	},
	"wpapi.comments.getById": {
		"affiche le commentaire %id%",
		"montre le commentaire %id%",
		"show comment %id%",
		"get comment %id%",
	},
	"wpapi.comments.create": {
		"crée un commentaire",
		"ajoute un commentaire",
		"create a comment",
		"add a comment",
	},
	"wpapi.comments.update": {
		"modifie le commentaire %id%",
		"approuve le commentaire %id%",
		"update comment %id%",
		"edit comment %id%",
	},
	"wpapi.comments.delete": {
		"supprime le commentaire %id%",
		"efface le commentaire %id%",
		"delete comment %id%",
		"remove comment %id%",
	},

	"wpapi.menus.get": {
		"liste les menus",
		"affiche les menus du site",
		"montre moi les menus",
		"list the menus",
		"show all menus",
	},
	"wpapi.menus.getById": {
		"affiche le menu %id%",
		"montre le menu %id%",
		"show menu %id%",
		"get menu %id%",
	},

	"wpapi.plugins.get": {
		"liste les extensions",
		"affiche tous les plugins",
		"montre moi les extensions installées",
		"list the plugins",
		"show all plugins",
	},
	"wpapi.plugins.getByName": {
		"affiche l'extension %plugin%",
		"montre le plugin %plugin%",
		"show plugin %plugin%",
		"get plugin %plugin%",
	},
	"wpapi.plugins.activate": {
		"active l'extension %plugin%",
		"active le plugin %plugin%",
		"activate plugin %plugin%",
		"enable the plugin %plugin%",
	},
	"wpapi.plugins.deactivate": {
		"désactive l'extension %plugin%",
		"désactive le plugin %plugin%",
		"deactivate plugin %plugin%",
		"disable the plugin %plugin%",
	},

	"wpapi.settings.get": {
		"affiche les réglages",
		"montre moi les paramètres du site",
		"liste les réglages du site",
		"show the site settings",
		"get settings",
	},
	"wpapi.settings.update": {
		"modifie les réglages",
		"change les paramètres du site",
		"mets à jour les réglages",
		"update the settings",
		"change site settings",
	},
}
