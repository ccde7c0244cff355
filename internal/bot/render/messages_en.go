package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "invite.title", "🔑 Developer Onboarding")
	message.SetString(lang, "invite.body",
		"**This onboarding process is intended for developers and those interested in becoming block producers who wish to unlock additional channels and resources within the Midnight ecosystem.**\n\n"+
			"If you're interested in:\n"+
			"• **Participating in zk discussions or testnet activities**\n"+
			"• **Accessing technical resources and development tools**\n"+
			"• **Exploring opportunities to become a block producer**\n"+
			"• **Engaging in developer-focused conversations and collaborations**\n"+
			"\n"+
			"Then this onboarding is for you!\n"+
			"⚠️ **Note:** If you're here for general community interaction or non-technical discussions, the **VERIFIED** role you've already acquired is sufficient and grants you access to the main community spaces. No further action is needed in that case.\n"+
			"\n"+
			"📋 **Developers and block producers**, to continue and unlock these resources, please click the button below to start your onboarding process.")
	message.SetString(lang, "invite.footer", "For questions or assistance, reach out to a moderator.")
	message.SetString(lang, "invite.button.start", "Start Developer Setup")
	message.SetString(lang, "invite.button.hackathon", "Get Hackathon Role")

	message.SetString(lang, "step.next", "Next")

	message.SetString(lang, "step.primary.title", "Step 1: Select Primary Role")
	message.SetString(lang, "step.primary.body", "Please select your primary role from the dropdown below.")
	message.SetString(lang, "step.primary.placeholder", "Select your primary role...")
	message.SetString(lang, "step.primary.selected.title", "Primary Role Selected")
	message.SetString(lang, "step.primary.selected.body", "Your primary role is: **%s**.\n\nClick **Next** to select additional roles.")

	message.SetString(lang, "step.subroles.title", "Step 2: Select Sub-Roles")
	message.SetString(lang, "step.subroles.body", "Choose additional roles that describe your expertise (optional).")
	message.SetString(lang, "step.subroles.placeholder", "Select your sub-roles (optional)...")
	message.SetString(lang, "step.subroles.selected.title", "Sub-Roles Selected")
	message.SetString(lang, "step.subroles.selected.body", "You selected the following sub-roles: **%s**.\n\nClick **Next** to select your ecosystem.")

	message.SetString(lang, "step.ecosystems.title", "Step 3: Select Ecosystem")
	message.SetString(lang, "step.ecosystems.body", "Choose the ecosystem you're most familiar with.")
	message.SetString(lang, "step.ecosystems.placeholder", "Select your ecosystems (you can choose multiple)...")
	message.SetString(lang, "step.ecosystems.selected.title", "Ecosystems Selected")
	message.SetString(lang, "step.ecosystems.selected.body", "You selected: **%s**.\n\nClick **Next** to provide your GitHub and X profiles.")

	message.SetString(lang, "step.links.modal.title", "Submit Your Profiles")
	message.SetString(lang, "step.links.github.label", "GitHub Link")
	message.SetString(lang, "step.links.github.placeholder", "https://github.com/yourusername")
	message.SetString(lang, "step.links.twitter.label", "X Profile Link")
	message.SetString(lang, "step.links.twitter.placeholder", "https://x.com/yourusername")
	message.SetString(lang, "step.links.saved.title", "Profiles Submitted")
	message.SetString(lang, "step.links.saved.body", "Your GitHub and X profiles have been saved. Click **Next** to agree to the terms.")
	message.SetString(lang, "step.links.conflict", "This GitHub or X profile is already in use. Please contact the Community Manager.")
	message.SetString(lang, "step.links.missing", "Both a GitHub link and an X profile link are required.")

	message.SetString(lang, "step.terms.title", "Step 4: Agree to the Terms")
	message.SetString(lang, "step.terms.body",
		"**Please review and agree to the following terms before proceeding:**\n\n"+
			"1️⃣ **This setup is exclusively for developers, block producers, or those aspiring to actively contribute in these roles.**\n"+
			"2️⃣ **By agreeing, you confirm that all information you provide is accurate and truthful.**\n"+
			"3️⃣ **Any misuse of roles or submission of false information may result in removal from the server.**\n"+
			"4️⃣ **Your participation helps us create a better, stronger community and supports the growth of the Midnight ecosystem.**\n\n"+
			"➡️ **Click 'Next' and type 'I Agree' to confirm your understanding and acceptance of these terms.**")
	message.SetString(lang, "step.agreement.modal.title", "Agree to the Terms")
	message.SetString(lang, "step.agreement.label", "Type 'I Agree'")
	message.SetString(lang, "step.agreement.placeholder", "Type 'I Agree' to confirm")
	message.SetString(lang, "step.agreement.rejected", "You must type 'I Agree' exactly to proceed.")

	message.SetString(lang, "step.complete.title", "Setup Complete!")
	message.SetString(lang, "step.complete.granted", "🎉 Thank you for completing the developer setup. You have been given the following roles: **%s**.")
	message.SetString(lang, "step.complete.none", "🎉 Thank you for completing the developer setup. No matching server roles were found for your selections; a moderator can assign them manually.")
	message.SetString(lang, "step.complete.failed", "Thank you for completing the developer setup. Your roles could not be assigned automatically; please reach out to a moderator.")

	message.SetString(lang, "step.invalid_selection", "That selection is not one of the available options. Please choose from the dropdown.")
	message.SetString(lang, "step.profile_missing", "No onboarding profile was found for you yet. Please start from Step 1.")

	message.SetString(lang, "hackathon.title", "Get Hackathon Role")
	message.SetString(lang, "hackathon.body",
		"Only ask to get a role if you are **REGISTERED** and **PARTICIPATING** in the hackathons.\n\n"+
			"If you are not registered and not participating in these available hackathons, please do not ask as members will be cross-checked and removed if we find out that users are not participating unless a team member asks so or you are part of the team or would like to help participants.\n\n"+
			"If the roles are abused, the user will be muted or face other consequences.")
	message.SetString(lang, "hackathon.placeholder", "Select your hackathon role...")
	message.SetString(lang, "hackathon.already", "You already have the role: **%s**.")
	message.SetString(lang, "hackathon.granted.channel", "✅ Role **%s** assigned successfully!\n🔗 You can now access the channel: %s")
	message.SetString(lang, "hackathon.granted.nochannel", "✅ Role **%s** assigned successfully, but I couldn't find the channel.")
	message.SetString(lang, "hackathon.granted", "✅ Role **%s** assigned successfully!")
	message.SetString(lang, "hackathon.unknown", "That hackathon role is not available.")
	message.SetString(lang, "hackathon.missing_role", "⚠️ The role **%s** does not exist on this server. Please contact a moderator.")
	message.SetString(lang, "hackathon.denied", "⚠️ I don't have permission to assign roles.")
	message.SetString(lang, "hackathon.failed", "❌ Failed to assign the role due to a server error. Please try again later.")
}
